package helper

import (
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"wedding_manager/config"
	"wedding_manager/constants"
	"wedding_manager/model"
)

// jwtSecret is read per call so secrets loaded from .env after package init
// are picked up.
func jwtSecret() []byte {
	return []byte(config.Config("JWT_SECRET"))
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func ValidEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

func GetAccountByEmail(db *gorm.DB, email string) (*model.Account, error) {
	var account model.Account
	if err := db.Where(&model.Account{Email: email}).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func GenerateAccessToken(claim model.TokenClaim) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["accountId"] = claim.AccountId
	claims["coupleId"] = claim.CoupleId
	claims["email"] = claim.Email
	claims["exp"] = time.Now().Add(time.Minute * 60).Unix()

	return token.SignedString(jwtSecret())
}

func GenerateRefreshToken(claim model.TokenClaim) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["accountId"] = claim.AccountId
	claims["email"] = claim.Email
	claims["exp"] = time.Now().Add(time.Hour * 24 * 7).Unix()

	return token.SignedString(jwtSecret())
}

func ParseToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecret(), nil
	})
}

// GetInfoAccountFromToken loads the account (with its couple) behind the JWT
// the Protected middleware stored in Locals. The zero claim means the token
// did not resolve to a live account.
func GetInfoAccountFromToken(c *fiber.Ctx, db *gorm.DB) (model.TokenClaim, bool) {
	u := c.Locals("user")
	token, ok := u.(*jwt.Token)
	if !ok || token == nil {
		return model.TokenClaim{}, false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return model.TokenClaim{}, false
	}

	accountId, ok := claims["accountId"].(float64)
	if !ok || accountId == 0 {
		return model.TokenClaim{}, false
	}
	email, _ := claims["email"].(string)

	var account model.Account
	if err := db.Preload("Couple").First(&account, uint(accountId)).Error; err != nil {
		log.Warn().Err(err).Uint("accountId", uint(accountId)).Msg("token account lookup failed")
		return model.TokenClaim{}, false
	}

	claim := model.TokenClaim{AccountId: account.ID, Email: email}
	if account.Couple != nil {
		claim.CoupleId = account.Couple.ID
		c.Locals("couple", account.Couple)
	}

	return claim, account.Role == constants.ROLE_ADMIN
}
