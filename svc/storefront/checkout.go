package storefront

import (
	"errors"

	"github.com/dmitrymomot/storefront/handler"
	"github.com/dmitrymomot/storefront/pkg/catalog"
	"github.com/dmitrymomot/storefront/pkg/checkout"
	"github.com/dmitrymomot/storefront/pkg/identity"
	"github.com/dmitrymomot/storefront/pkg/logger"
	"github.com/dmitrymomot/storefront/pkg/sanitizer"
	"github.com/dmitrymomot/storefront/pkg/validator"
	"github.com/dmitrymomot/storefront/views"
)

// identityFields are the identity inputs every checkout form posts.
type identityFields struct {
	UserID     string `form:"user_id"`
	CustomerID string `form:"customer_id"`
}

const maxPlanIDLength = 64

type selectRequest struct {
	PlanID     string `form:"plan_id"`
	UserID     string `form:"user_id"`
	CustomerID string `form:"customer_id"`
}

type intervalRequest struct {
	Monthly    bool   `form:"monthly"`
	UserID     string `form:"user_id"`
	CustomerID string `form:"customer_id"`
}

func posted(userID, customerID string) identity.Identity {
	return identity.Identity{UserID: userID, CustomerID: customerID}
}

func (s *Service) checkoutProps(sel checkout.Selection, who identity.Identity) views.CheckoutProps {
	return views.CheckoutProps{
		Catalog:         s.catalog.Current(),
		Selection:       sel,
		Identity:        who,
		Formatter:       s.formatter,
		DefaultDiscount: s.cfg.DefaultYearlyDiscount,
		PopularPlanID:   s.cfg.PopularPlanID,
		Theme:           s.theme,
	}
}

func (s *Service) showCheckout(ctx handler.Context, _ struct{}) handler.Response {
	visitor, err := s.visitor(ctx)
	if err != nil {
		return handler.Error(err)
	}
	who := s.resolve(ctx)

	sel, err := s.checkout.Current(ctx, visitor)
	if err != nil {
		return handler.Error(err)
	}
	return handler.Templ(views.CheckoutPage(s.checkoutProps(sel, who)))
}

// checkoutResult patches the checkout fragment for Datastar requests. Page
// requests are redirected back to the checkout page with the identity
// carried over, so a reload does not resubmit the form.
func (s *Service) checkoutResult(ctx handler.Context, sel checkout.Selection, who identity.Identity) handler.Response {
	if ctx.IsDataStar() {
		return handler.Templ(views.Checkout(s.checkoutProps(sel, who)))
	}
	if !who.Anonymous() {
		if err := s.identity.Navigate(ctx.ResponseWriter(), who); err != nil {
			s.logger.WarnContext(ctx, "carry identity to checkout", logger.Error(err))
		}
	}
	return handler.Redirect(views.RouteCheckout)
}

func (s *Service) selectPlan(ctx handler.Context, req selectRequest) handler.Response {
	req.PlanID = sanitizer.Trim(req.PlanID)
	if errs := formErrors(validator.Apply(
		validator.Required("plan_id", req.PlanID).WithMessage(missingPlanMessage),
		validator.MaxLen("plan_id", req.PlanID, maxPlanIDLength).WithMessage(missingPlanMessage),
	)); !errs.Empty() {
		return handler.Error(errs)
	}
	visitor, err := s.visitor(ctx)
	if err != nil {
		return handler.Error(err)
	}
	who := s.resolve(ctx, posted(req.UserID, req.CustomerID))

	if !ctx.IsDataStar() {
		out, err := s.checkout.Select(ctx, visitor, req.PlanID, who)
		switch {
		case errors.Is(err, checkout.ErrCheckoutInProgress):
			// the page shows the pending checkout
		case err != nil:
			return handler.Error(err)
		case out.Redirect():
			return handler.Redirect(out.RedirectURL)
		}
		return s.checkoutResult(ctx, out.Selection, who)
	}

	// Datastar: show the loading modal before the backend call, then the outcome.
	return handler.SSE(func(st handler.Stream) error {
		pending := checkout.OnPending(func(sel checkout.Selection) {
			if err := st.Send(views.Checkout(s.checkoutProps(sel, who))); err != nil {
				s.logger.DebugContext(st, "push pending checkout", logger.Error(err))
			}
		})

		out, err := s.checkout.Select(st, visitor, req.PlanID, who, pending)
		switch {
		case errors.Is(err, checkout.ErrCheckoutInProgress):
			return st.Send(views.Notice(checkoutBusyMessage),
				handler.WithTarget("#"+views.IDToasts), handler.WithPatchMode(handler.PatchPrepend))
		case err != nil:
			return err
		case out.Redirect():
			return st.Redirect(out.RedirectURL)
		}
		return st.Send(views.Checkout(s.checkoutProps(out.Selection, who)))
	})
}

func (s *Service) setInterval(ctx handler.Context, req intervalRequest) handler.Response {
	visitor, err := s.visitor(ctx)
	if err != nil {
		return handler.Error(err)
	}
	who := s.resolve(ctx, posted(req.UserID, req.CustomerID))

	sel, err := s.checkout.SetMonthly(ctx, visitor, req.Monthly)
	if err != nil {
		return handler.Error(err)
	}
	return s.checkoutResult(ctx, sel, who)
}

func (s *Service) dismiss(ctx handler.Context, req identityFields) handler.Response {
	visitor, err := s.visitor(ctx)
	if err != nil {
		return handler.Error(err)
	}
	who := s.resolve(ctx, posted(req.UserID, req.CustomerID))

	sel, err := s.checkout.Dismiss(ctx, visitor)
	if err != nil {
		return handler.Error(err)
	}
	return s.checkoutResult(ctx, sel, who)
}

// reload fetches the catalog again. A failed load is part of the rendered
// state, not an error of the request.
func (s *Service) reload(ctx handler.Context, req identityFields) handler.Response {
	visitor, err := s.visitor(ctx)
	if err != nil {
		return handler.Error(err)
	}
	who := s.resolve(ctx, posted(req.UserID, req.CustomerID))

	if _, err := s.catalog.Load(ctx); err != nil && !errors.Is(err, catalog.ErrSuperseded) {
		s.logger.DebugContext(ctx, "catalog reload failed", logger.Error(err))
	}

	sel, err := s.checkout.Current(ctx, visitor)
	if err != nil {
		return handler.Error(err)
	}
	return s.checkoutResult(ctx, sel, who)
}

// streamCheckout keeps a Datastar connection open and re-renders the
// checkout whenever a catalog load finishes.
func (s *Service) streamCheckout(ctx handler.Context, _ struct{}) handler.Response {
	if s.updates == nil {
		return handler.Error(handler.ErrServiceUnavailable)
	}
	visitor, err := s.visitor(ctx)
	if err != nil {
		return handler.Error(err)
	}
	who := s.resolve(ctx)

	return handler.SSE(func(st handler.Stream) error {
		updates, unsubscribe := s.updates.Subscribe(st)
		defer unsubscribe()

		for state := range updates {
			if state.Status == catalog.StatusLoading {
				continue
			}
			sel, err := s.checkout.Current(st, visitor)
			if err != nil {
				return err
			}
			props := s.checkoutProps(sel, who)
			props.Catalog = state
			if err := st.Send(views.Checkout(props)); err != nil {
				if st.Err() != nil {
					return nil
				}
				return err
			}
		}
		return nil
	})
}
