package accounts

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"time"

	"warranty-management-backend/internal/auth"
	"warranty-management-backend/internal/mailer"
	"warranty-management-backend/internal/models"
	"warranty-management-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidOTP         = errors.New("invalid or expired OTP")
	ErrInvalidRole        = errors.New("invalid role")
	ErrEmailTaken         = errors.New("email already registered")
	ErrCodeConflict       = errors.New("role code already assigned, retry")
)

const otpTTL = 10 * time.Minute

// Service handles login, admin-driven user provisioning and OTP password
// resets.
type Service struct {
	users     *repository.UserRepository
	shops     *repository.ShopRepository
	mail      *mailer.Mailer
	db        *gorm.DB
	jwtSecret string
	log       *logrus.Logger
}

func NewService(
	users *repository.UserRepository,
	shops *repository.ShopRepository,
	mail *mailer.Mailer,
	db *gorm.DB,
	jwtSecret string,
	log *logrus.Logger,
) *Service {
	return &Service{users: users, shops: shops, mail: mail, db: db, jwtSecret: jwtSecret, log: log}
}

// Login verifies the password and issues a JWT.
func (s *Service) Login(email, password string) (string, *models.User, error) {
	user, err := s.users.GetByEmail(email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}
	token, err := auth.GenerateToken(s.jwtSecret, user.Email, user.Role)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// NewUserInput is the admin provisioning payload; only the fields matching
// the role are read.
type NewUserInput struct {
	Email         string `json:"email"`
	Role          string `json:"role"`
	AdminName     string `json:"admin_name"`
	AdminCode     string `json:"admin_code"`
	ShopName      string `json:"shop_name"`
	ShopAddress   string `json:"shop_address"`
	ManagerName   string `json:"manager_name"`
	ContactNumber string `json:"contact_number"`
}

// CreateUser provisions a login plus its role profile in one transaction.
// Shop and manager codes are auto-assigned (SP###/MN###); the generated
// password is mailed to the new user.
func (s *Service) CreateUser(in NewUserInput) (string, error) {
	switch in.Role {
	case auth.RoleAdmin, auth.RoleManager, auth.RoleShopOwner:
	default:
		return "", ErrInvalidRole
	}

	password, err := randomPassword()
	if err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	user := &models.User{
		ID:        uuid.New(),
		Email:     in.Email,
		Password:  string(hash),
		Role:      in.Role,
		CreatedAt: time.Now(),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.users.Create(tx, user); err != nil {
			return err
		}
		switch in.Role {
		case auth.RoleAdmin:
			return tx.Create(&models.Admin{
				ID:        uuid.New(),
				UserID:    user.ID,
				AdminName: in.AdminName,
				AdminCode: in.AdminCode,
				CreatedAt: time.Now(),
			}).Error
		case auth.RoleShopOwner:
			code, err := s.shops.NextShopCode(tx)
			if err != nil {
				return err
			}
			return s.shops.Create(tx, &models.Shop{
				ID:            uuid.New(),
				UserID:        user.ID,
				ShopCode:      code,
				ShopName:      in.ShopName,
				ShopAddress:   in.ShopAddress,
				ContactNumber: in.ContactNumber,
				CreatedAt:     time.Now(),
			})
		default:
			code, err := s.shops.NextManagerCode(tx)
			if err != nil {
				return err
			}
			return tx.Create(&models.Manager{
				ID:            uuid.New(),
				UserID:        user.ID,
				ManagerCode:   code,
				ManagerName:   in.ManagerName,
				ContactNumber: in.ContactNumber,
				CreatedAt:     time.Now(),
			}).Error
		}
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			_, lookupErr := s.users.GetByEmail(in.Email)
			return "", provisionConflict(lookupErr == nil)
		}
		return "", err
	}

	body := fmt.Sprintf("Your login email: %s\nPassword: %s\nPlease change your password after login.", in.Email, password)
	if err := s.mail.Send(in.Email, "Your Account Credentials", body); err != nil {
		s.log.WithError(err).WithField("email", in.Email).Error("failed to send credentials mail")
	}
	return password, nil
}

// ForgotPassword stores a 6-digit OTP with a 10-minute expiry and mails it.
func (s *Service) ForgotPassword(email string) error {
	if _, err := s.users.GetByEmail(email); err != nil {
		return ErrUserNotFound
	}
	otp, err := randomOTP()
	if err != nil {
		return err
	}
	expiry := time.Now().Add(otpTTL)
	if err := s.users.SetOTP(email, &otp, &expiry); err != nil {
		return err
	}
	return s.mail.Send(email, "Your OTP Code", "Your OTP is: "+otp)
}

// ResetPassword consumes a valid OTP and replaces the password hash.
func (s *Service) ResetPassword(email, otp, newPassword string) error {
	user, err := s.users.GetByEmail(email)
	if err != nil {
		return ErrUserNotFound
	}
	if user.OTP == nil || *user.OTP != otp ||
		user.OTPExpiry == nil || time.Now().After(*user.OTPExpiry) {
		return ErrInvalidOTP
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(email, string(hash)); err != nil {
		return err
	}
	return s.users.SetOTP(email, nil, nil)
}

// ResolveScope maps an authenticated user to the authorization scope the
// query services consume.
func (s *Service) ResolveScope(user *models.User) (auth.Scope, error) {
	scope := auth.Scope{Role: user.Role, UserID: user.ID}
	if user.Role == auth.RoleShopOwner {
		shop, err := s.shops.GetByUserID(user.ID)
		if err != nil {
			return scope, err
		}
		scope.ShopCode = shop.ShopCode
	}
	return scope, nil
}

func (s *Service) GetUserByEmail(email string) (*models.User, error) {
	return s.users.GetByEmail(email)
}

func (s *Service) ListShopOwners() ([]repository.ShopListing, error) {
	return s.shops.List()
}

func (s *Service) ListManagers() ([]repository.ManagerListing, error) {
	return s.users.ListManagers()
}

// provisionConflict names which unique index a duplicate-key hit: the login
// email, or a role code two concurrent provisions computed identically. The
// latter is transient and the caller may simply retry.
func provisionConflict(emailExists bool) error {
	if emailExists {
		return ErrEmailTaken
	}
	return ErrCodeConflict
}

func randomPassword() (string, error) {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func randomOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
