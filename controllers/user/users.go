package userControllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/josuejheymi/backend-levels/config"
	"github.com/josuejheymi/backend-levels/logger"
	"github.com/josuejheymi/backend-levels/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const referralBonusPoints = 100

// -------- Request Structs --------

type RegisterRequest struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=6"`
	BirthDate    string `json:"birth_date" binding:"required"` // YYYY-MM-DD
	ReferralCode string `json:"referral_code"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateUserRequest struct {
	Name      *string `json:"name"`
	Password  *string `json:"password"`
	BirthDate *string `json:"birth_date"`
}

// -------- Core Logic --------

// Register applies every registration rule in order: age gate, unique
// email, student-discount flag, referral code generation, referrer bonus.
func Register(db *gorm.DB, req RegisterRequest) (*models.User, error) {
	birthDate, err := time.Parse("2006-01-02", req.BirthDate)
	if err != nil {
		return nil, errors.New("invalid birth date, expected YYYY-MM-DD")
	}

	user := models.User{
		Name:      req.Name,
		Email:     req.Email,
		BirthDate: birthDate,
		Level:     models.LevelNovice,
		Role:      models.RoleCustomer,
	}

	if user.Age(time.Now()) < 18 {
		return nil, errors.New("you must be at least 18 years old to register")
	}

	var existing models.User
	if err := db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, errors.New("this email is already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user.IsStudent = isStudentEmail(req.Email)

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user.Password = string(hash)

	code, err := generateReferralCode(db)
	if err != nil {
		return nil, err
	}
	user.ReferralCode = code

	if req.ReferralCode != "" {
		var referrer models.User
		if err := db.Where("referral_code = ?", req.ReferralCode).First(&referrer).Error; err == nil {
			referrer.AddPoints(referralBonusPoints)
			if err := db.Save(&referrer).Error; err != nil {
				return nil, err
			}
			logger.Log.Info("referral bonus awarded",
				zap.Uint("referrer_id", referrer.ID),
				zap.Int("points", referralBonusPoints))
		}
	}

	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func isStudentEmail(email string) bool {
	for _, suffix := range config.AppConfig.StudentDomains {
		if strings.HasSuffix(strings.ToLower(email), suffix) {
			return true
		}
	}
	return false
}

// generateReferralCode produces a unique 8-char uppercase code.
func generateReferralCode(db *gorm.DB) (string, error) {
	for i := 0; i < 5; i++ {
		code := strings.ToUpper(uuid.NewString()[:8])
		var count int64
		if err := db.Model(&models.User{}).Where("referral_code = ?", code).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return code, nil
		}
	}
	return "", errors.New("could not generate a unique referral code")
}

// -------- Handlers --------

// POST /users/register
func RegisterHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		user, err := Register(db, req)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// POST /users/login
func LoginHandler(db *gorm.DB, issueToken func(models.User) (string, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var user models.User
		if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}

		token, err := issueToken(user)
		if err != nil {
			logger.Log.Error("token generation failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"token":      token,
			"id":         user.ID,
			"name":       user.Name,
			"email":      user.Email,
			"role":       user.Role,
			"is_student": user.IsStudent,
			"points":     user.Points,
			"level":      user.Level,
		})
	}
}

// PUT /users/:id — self or admin only.
func UpdateUserHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
			return
		}

		callerID := c.GetUint("user_id")
		if callerID != uint(id) && c.GetString("role") != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "You can only update your own profile"})
			return
		}

		var user models.User
		if err := db.First(&user, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		var req UpdateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if req.Name != nil {
			user.Name = *req.Name
		}
		if req.Password != nil && *req.Password != "" {
			hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
				return
			}
			user.Password = string(hash)
		}
		if req.BirthDate != nil {
			birthDate, err := time.Parse("2006-01-02", *req.BirthDate)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid birth date, expected YYYY-MM-DD"})
				return
			}
			user.BirthDate = birthDate
			if user.Age(time.Now()) < 18 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "you must be at least 18 years old"})
				return
			}
		}

		if err := db.Save(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// GET /users (admin)
func GetAllUsersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []models.User
		if err := db.Order("created_at desc").Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
			return
		}
		c.JSON(http.StatusOK, users)
	}
}
