package userControllers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/junaidrashid-git/storefront-backend/apperrors"
	"github.com/junaidrashid-git/storefront-backend/middleware"
	"github.com/junaidrashid-git/storefront-backend/models"
	"gorm.io/gorm"
)

// PasswordHasher hashes and checks user passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

// TokenIssuer signs a bearer token for a user.
type TokenIssuer interface {
	Issue(user models.User) (string, error)
}

// Store reads and writes users.
type Store struct {
	db     *gorm.DB
	hasher PasswordHasher
	logger *slog.Logger
}

func NewStore(db *gorm.DB, hasher PasswordHasher, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{db: db, hasher: hasher, logger: logger}
}

type CreateUserInput struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
}

type UpdateUserInput struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Password  *string `json:"password"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (s *Store) Index(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if err := s.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, apperrors.Store("user.index", err)
	}
	return users, nil
}

func (s *Store) Show(ctx context.Context, id uint) (models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, apperrors.NotFound("user.show", "user %d does not exist", id)
		}
		return models.User{}, apperrors.Store("user.show", err)
	}
	return user, nil
}

// Create inserts a user unless the email is already taken.
func (s *Store) Create(ctx context.Context, in CreateUserInput) (models.User, error) {
	const op = "user.create"
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     normalizeEmail(in.Email),
		Password:  hash,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.User{}).Where("email = ?", user.Email).Count(&existing).Error; err != nil {
			return apperrors.Store(op, err)
		}
		if existing > 0 {
			return apperrors.Validation(op, "user with email %s does already exist", user.Email)
		}
		if err := tx.Create(&user).Error; err != nil {
			return apperrors.FromStore(op, err)
		}
		return nil
	})
	if err != nil {
		return models.User{}, s.logError(op, apperrors.FromStore(op, err))
	}
	return user, nil
}

// Update applies the non-nil fields of in to user id.
func (s *Store) Update(ctx context.Context, id uint, in UpdateUserInput) (models.User, error) {
	const op = "user.update"
	updates := make(map[string]interface{})
	if in.FirstName != nil {
		updates["first_name"] = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		updates["last_name"] = strings.TrimSpace(*in.LastName)
	}
	if in.Email != nil {
		updates["email"] = normalizeEmail(*in.Email)
	}
	if in.Password != nil {
		hash, err := s.hasher.Hash(*in.Password)
		if err != nil {
			return models.User{}, err
		}
		updates["password"] = hash
	}

	var user models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, id).Error; err != nil {
			return apperrors.FromStore(op, err)
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&user).Updates(updates).Error; err != nil {
			return apperrors.FromStore(op, err)
		}
		return tx.First(&user, id).Error
	})
	if err != nil {
		return models.User{}, s.logError(op, apperrors.FromStore(op, err))
	}
	return user, nil
}

// Delete removes user id and returns the removed row.
func (s *Store) Delete(ctx context.Context, id uint) (models.User, error) {
	const op = "user.delete"
	var user models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, id).Error; err != nil {
			return apperrors.FromStore(op, err)
		}
		if err := tx.Delete(&models.User{}, id).Error; err != nil {
			return apperrors.FromStore(op, err)
		}
		return nil
	})
	if err != nil {
		return models.User{}, s.logError(op, apperrors.FromStore(op, err))
	}
	return user, nil
}

// Authenticate returns the user whose email and password match.
func (s *Store) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	const op = "user.authenticate"
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, apperrors.Unauthenticated(op, "invalid email or password")
		}
		return models.User{}, s.logError(op, apperrors.Store(op, err))
	}
	if !s.hasher.Compare(user.Password, password) {
		return models.User{}, apperrors.Unauthenticated(op, "invalid email or password")
	}
	return user, nil
}

func (s *Store) logError(op string, err error) error {
	if apperrors.KindOf(err) == apperrors.KindStore {
		s.logger.Error("user store operation failed", "event", op, "error", err.Error())
	}
	return err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// -------- Handlers --------

// POST /users
func CreateUser(store *Store, tokens TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateUserInput
		if err := c.ShouldBindJSON(&input); err != nil {
			apperrors.Respond(c, apperrors.Wrap(apperrors.KindValidation, "user.create", "invalid request body", err))
			return
		}
		user, err := store.Create(c.Request.Context(), input)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		token, err := tokens.Issue(user)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"token": token, "user": user})
	}
}

// POST /auth/login
func Login(store *Store, tokens TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			apperrors.Respond(c, apperrors.Wrap(apperrors.KindValidation, "user.authenticate", "invalid request body", err))
			return
		}
		user, err := store.Authenticate(c.Request.Context(), input.Email, input.Password)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		token, err := tokens.Issue(user)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token})
	}
}

// GET /admin/users
func GetAllUsers(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := store.Index(c.Request.Context())
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, users)
	}
}

// GET /users/:id
func GetUser(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil || id == 0 {
			apperrors.Respond(c, apperrors.Validation("user.show", "invalid user id %q", c.Param("id")))
			return
		}
		user, err := store.Show(c.Request.Context(), uint(id))
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				apperrors.RespondWithStatus(c, http.StatusNotFound, err)
				return
			}
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// POST|PUT /users/:id, behind VerifyUserID. Returns a token carrying the
// updated claim.
func UpdateUser(store *Store, tokens TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := middleware.TargetUserID(c)
		if !ok {
			apperrors.Respond(c, apperrors.Unauthorized("user.update", "no authorized target user"))
			return
		}
		var input UpdateUserInput
		if err := c.ShouldBindBodyWith(&input, binding.JSON); err != nil {
			apperrors.Respond(c, apperrors.Wrap(apperrors.KindValidation, "user.update", "invalid request body", err))
			return
		}
		user, err := store.Update(c.Request.Context(), id, input)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		token, err := tokens.Issue(user)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
	}
}

// DELETE /users/:id, behind VerifyUserID.
func DeleteUser(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := middleware.TargetUserID(c)
		if !ok {
			apperrors.Respond(c, apperrors.Unauthorized("user.delete", "no authorized target user"))
			return
		}
		user, err := store.Delete(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				apperrors.RespondWithStatus(c, http.StatusNotFound, err)
				return
			}
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}
