package helpers

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/spycce/SmartTrip/models"
)

func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

func VerifyPassword(userPassword, foundUserPassword string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(foundUserPassword), []byte(userPassword)); err != nil {
		return models.ErrInvalidCredential
	}
	return nil
}

// Trips and photos are owner scoped, reviews are author scoped.
// A trip owner cannot edit or delete someone else's review on that trip.

// CheckOwner fails with ErrNotFound so callers cannot probe for other users' resources.
func CheckOwner(ownerID, requesterID string) error {
	if ownerID == "" || ownerID != requesterID {
		return models.ErrNotFound
	}
	return nil
}

// CheckAuthor fails with ErrForbidden when requesterID did not write the review.
func CheckAuthor(review *models.Review, requesterID string) error {
	if review.UserID == "" || review.UserID != requesterID {
		return models.ErrForbidden
	}
	return nil
}
