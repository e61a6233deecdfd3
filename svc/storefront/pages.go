package storefront

import (
	"github.com/dmitrymomot/storefront/handler"
	"github.com/dmitrymomot/storefront/pkg/identity"
	"github.com/dmitrymomot/storefront/pkg/logger"
	"github.com/dmitrymomot/storefront/views"
)

type successRequest struct {
	SessionID string `query:"session_id"`
}

// success is where the hosted checkout returns after payment. The visitor's
// checkout starts over and the paying customer becomes the persisted identity.
func (s *Service) success(ctx handler.Context, req successRequest) handler.Response {
	if visitor, err := s.visitor(ctx); err == nil {
		if err := s.checkout.Reset(ctx, visitor); err != nil {
			s.logger.WarnContext(ctx, "reset checkout after payment", logger.Error(err))
		}
	}

	p := views.SuccessProps{Formatter: s.formatter, Theme: s.theme}
	if req.SessionID == "" {
		return handler.Templ(views.SuccessPage(p))
	}

	details, err := s.backend.CheckoutSession(ctx, req.SessionID)
	if err != nil {
		s.logger.WarnContext(ctx, "load checkout session", logger.SessionID(req.SessionID), logger.Error(err))
		p.LoadError = sessionLoadMessage
		return handler.Templ(views.SuccessPage(p))
	}
	p.Session = &details

	who := identity.Identity{
		UserID:     details.User.ID,
		CustomerID: details.User.StripeCustomerID,
		Name:       details.User.Name,
		Email:      details.User.Email,
	}
	if !who.Anonymous() {
		if err := s.identity.Persist(ctx.ResponseWriter(), who); err != nil {
			s.logger.WarnContext(ctx, "persist identity", logger.Error(err))
		}
	}
	return handler.Templ(views.SuccessPage(p))
}

func (s *Service) canceled(ctx handler.Context, _ struct{}) handler.Response {
	return handler.Templ(views.CancelPage(s.theme))
}

// apiPlans mirrors the catalog state as JSON.
func (s *Service) apiPlans(ctx handler.Context, _ struct{}) handler.Response {
	return handler.JSON(s.catalog.Current())
}
