package storefront

import (
	"net/http"

	"github.com/dmitrymomot/storefront/handler"
	"github.com/dmitrymomot/storefront/pkg/backend"
	"github.com/dmitrymomot/storefront/pkg/broker"
	"github.com/dmitrymomot/storefront/pkg/identity"
	"github.com/dmitrymomot/storefront/pkg/logger"
	"github.com/dmitrymomot/storefront/pkg/sanitizer"
	"github.com/dmitrymomot/storefront/pkg/validator"
	"github.com/dmitrymomot/storefront/views"
)

type createCustomerRequest struct {
	Name  string `form:"name"`
	Email string `form:"email"`
}

const maxNameLength = 100

func (r *createCustomerRequest) sanitize() {
	r.Name = sanitizer.SingleLine(r.Name)
	r.Email = sanitizer.NormalizeEmail(r.Email)
}

func (r createCustomerRequest) validate() handler.ValidationError {
	return formErrors(validator.Apply(
		validator.Required("name", r.Name).WithMessage(missingNameMessage),
		validator.MaxLen("name", r.Name, maxNameLength).WithMessage(nameTooLongMessage),
		validator.Email("email", r.Email).WithMessage(invalidEmailMessage),
	))
}

type customerRequest struct {
	ID      string `path:"id"`
	Confirm string `query:"confirm"`
	// Canceled is set by the redirect after a successful cancellation.
	Canceled bool `query:"canceled"`
}

type cancelRequest struct {
	ID             string `path:"id"`
	SubscriptionID string `path:"subscriptionID"`
}

func (s *Service) customersProps(ctx handler.Context, form views.CustomerForm) views.CustomersProps {
	p := views.CustomersProps{Form: form, Theme: s.theme}
	customers, err := s.backend.ListCustomers(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "list customers", logger.Error(err))
		p.LoadError = customersLoadMessage
		return p
	}
	p.Customers = customers
	return p
}

func (s *Service) listCustomers(ctx handler.Context, _ struct{}) handler.Response {
	p := s.customersProps(ctx, views.CustomerForm{})
	if p.LoadError != "" {
		return handler.TemplStatus(http.StatusBadGateway, views.CustomersPage(p))
	}
	return handler.Templ(views.CustomersPage(p))
}

func (s *Service) createCustomer(ctx handler.Context, req createCustomerRequest) handler.Response {
	req.sanitize()
	form := views.CustomerForm{Name: req.Name, Email: req.Email}
	if errs := req.validate(); !errs.Empty() {
		form.Errors = errs
		return s.customerFormResult(ctx, http.StatusUnprocessableEntity, form)
	}

	customer, err := s.backend.CreateCustomer(ctx, backend.CreateCustomerRequest{Name: req.Name, Email: req.Email})
	if err != nil {
		s.logger.WarnContext(ctx, "create customer", logger.Error(err))
		form.Message = customerCreateMessage
		if apiErr, ok := backend.AsAPIError(err); ok && apiErr.Message != "" {
			form.Message = customerCreateMessage + ": " + apiErr.Message
		}
		return s.customerFormResult(ctx, http.StatusBadGateway, form)
	}

	s.logger.InfoContext(ctx, "customer created", logger.UserID(customer.ID), logger.CustomerID(customer.StripeCustomerID))
	return handler.Redirect(views.RouteCustomers)
}

// customerFormResult re-renders the overview with the form's errors.
func (s *Service) customerFormResult(ctx handler.Context, status int, form views.CustomerForm) handler.Response {
	p := s.customersProps(ctx, form)
	if ctx.IsDataStar() {
		return handler.Templ(views.Customers(p))
	}
	return handler.TemplStatus(status, views.CustomersPage(p))
}

func (s *Service) showCustomer(ctx handler.Context, req customerRequest) handler.Response {
	p := views.CustomerProps{
		ConfirmCancel: req.Confirm == "cancel",
		Canceled:      req.Canceled,
		Formatter:     s.formatter,
		Theme:         s.theme,
	}
	details, err := s.backend.CustomerDetails(ctx, req.ID)
	if err != nil {
		s.logger.WarnContext(ctx, "load customer", logger.UserID(req.ID), logger.Error(err))
		p.LoadError = customerLoadMessage
		status := http.StatusBadGateway
		if backend.IsNotFound(err) {
			status = http.StatusNotFound
		}
		return handler.TemplStatus(status, views.CustomerPage(p))
	}
	p.Details = details
	return handler.TemplPartial(views.Customer(p), views.CustomerPage(p))
}

// simulate makes the customer the acting identity and opens the checkout.
func (s *Service) simulate(ctx handler.Context, req customerRequest) handler.Response {
	details, err := s.backend.CustomerDetails(ctx, req.ID)
	if err != nil {
		return handler.Error(backendError(err))
	}

	who := identity.Identity{
		UserID:     details.User.ID,
		CustomerID: details.User.StripeCustomerID,
		Name:       details.User.Name,
		Email:      details.User.Email,
	}
	w := ctx.ResponseWriter()
	if err := s.identity.Persist(w, who); err != nil {
		return handler.Error(err)
	}
	if err := s.identity.Navigate(w, who); err != nil {
		return handler.Error(err)
	}
	return handler.Redirect(views.RouteCheckout)
}

func (s *Service) cancelSubscription(ctx handler.Context, req cancelRequest) handler.Response {
	if err := s.canceler.CancelSubscription(ctx, req.SubscriptionID); err != nil {
		msg := broker.DefaultCancelMessage
		if m, ok := broker.CancelMessage(err); ok && m != broker.DefaultCancelMessage {
			msg = cancelFailedPrefix + m
		}
		p := views.CustomerProps{
			CancelError: msg,
			Formatter:   s.formatter,
			Theme:       s.theme,
		}
		details, derr := s.backend.CustomerDetails(ctx, req.ID)
		if derr != nil {
			return handler.Error(backendError(derr))
		}
		p.Details = details
		if ctx.IsDataStar() {
			return handler.Templ(views.Customer(p))
		}
		return handler.TemplStatus(http.StatusBadGateway, views.CustomerPage(p))
	}

	s.logger.InfoContext(ctx, "subscription canceled", logger.UserID(req.ID), logger.SubscriptionID(req.SubscriptionID))
	return handler.Redirect(views.CustomerPath(req.ID) + "?canceled=true")
}

// logout forgets the persisted identity.
func (s *Service) logout(ctx handler.Context, _ struct{}) handler.Response {
	s.identity.Forget(ctx.ResponseWriter())
	return handler.Redirect(views.RouteCustomers)
}
