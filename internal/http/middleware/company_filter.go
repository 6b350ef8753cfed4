package middleware

import (
	"net/http"

	"github.com/groenwerk/offerte-api/internal/auth"
	"github.com/groenwerk/offerte-api/internal/domain"
	"go.uber.org/zap"
)

// CompanyFilterMiddleware handles multi-tenant data isolation.
// It extracts the user's company context and optionally allows Groep
// users to narrow queries to a specific werkmaatschappij.
type CompanyFilterMiddleware struct {
	logger *zap.Logger
}

func NewCompanyFilterMiddleware(logger *zap.Logger) *CompanyFilterMiddleware {
	return &CompanyFilterMiddleware{
		logger: logger,
	}
}

// Filter sets the effective company filter in the request context.
// Groep users and super admins can narrow with ?company_id=<company>;
// everyone else is always scoped to their own company.
func (m *CompanyFilterMiddleware) Filter(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userCtx, ok := auth.FromContext(r.Context())
		if !ok {
			// Authentication middleware rejects unauthenticated requests
			// before we get here.
			next.ServeHTTP(w, r)
			return
		}

		var filter *auth.CompanyFilter

		requestedCompanyID := r.URL.Query().Get("company_id")

		if requestedCompanyID != "" {
			companyID := domain.CompanyID(requestedCompanyID)

			if !domain.IsValidCompanyID(requestedCompanyID) {
				http.Error(w, "Invalid company_id parameter", http.StatusBadRequest)
				return
			}

			if !userCtx.CanAccessCompany(companyID) {
				m.logger.Warn("user attempted to access unauthorized company",
					zap.String("user_id", userCtx.UserID),
					zap.String("user_company", string(userCtx.CompanyID)),
					zap.String("requested_company", requestedCompanyID),
				)
				http.Error(w, "Access denied: you cannot access data for this company", http.StatusForbidden)
				return
			}

			filter = &auth.CompanyFilter{
				CompanyID:            &companyID,
				RequestedByGroepUser: userCtx.IsGroepUser(),
			}
		} else {
			// No explicit company requested. Groep users see the whole
			// group, everyone else only their own company.
			if userCtx.CompanyID != "" && userCtx.CompanyID != domain.CompanyGroep {
				companyID := userCtx.CompanyID
				filter = &auth.CompanyFilter{
					CompanyID:            &companyID,
					RequestedByGroepUser: false,
				}
			} else {
				filter = &auth.CompanyFilter{
					CompanyID:            nil,
					RequestedByGroepUser: false,
				}
			}
		}

		ctx := auth.WithCompanyFilter(r.Context(), filter)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
