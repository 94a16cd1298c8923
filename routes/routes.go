package routes

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront-backend/apperrors"
	"github.com/junaidrashid-git/storefront-backend/auth"
	orderControllers "github.com/junaidrashid-git/storefront-backend/controllers/order"
	productcontroller "github.com/junaidrashid-git/storefront-backend/controllers/product"
	userControllers "github.com/junaidrashid-git/storefront-backend/controllers/user"
	"github.com/junaidrashid-git/storefront-backend/database"
	"gorm.io/gorm"
)

// Dependencies are the shared services every route group draws from.
type Dependencies struct {
	DB          *gorm.DB
	Logger      *slog.Logger
	Tokens      *auth.Tokens
	Hasher      *auth.Hasher
	Hub         *orderControllers.Hub
	AdminAPIKey string
}

type handlers struct {
	orders   *orderControllers.Service
	users    *userControllers.Store
	products *productcontroller.Store
}

// SetupRoutes is the single entry-point that wires up every route group.
func SetupRoutes(r *gin.Engine, deps Dependencies) {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Hub == nil {
		deps.Hub = orderControllers.NewHub(deps.Logger)
	}
	h := handlers{
		orders:   orderControllers.NewService(deps.DB, deps.Logger, deps.Hub),
		users:    userControllers.NewStore(deps.DB, deps.Hasher, deps.Logger),
		products: productcontroller.NewStore(deps.DB),
	}

	r.GET("/healthz", healthz(deps.DB))

	// Public auth routes
	SetupAuthRoutes(r, deps, h)

	// Users (signup public, the rest JWT-protected)
	SetupUserRoutes(r, deps, h)

	// Catalogue
	SetupProductRoutes(r, deps, h)

	// Orders (JWT-protected)
	SetupOrderRoutes(r, deps, h)

	// Admin routes (API-Key-protected)
	SetupAdminRoutes(r, deps, h)
}

func healthz(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := database.Ping(c.Request.Context(), db); err != nil {
			apperrors.RespondWithStatus(c, http.StatusServiceUnavailable, apperrors.Store("healthz", err))
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
