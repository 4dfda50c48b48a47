package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// ==================== UUID & TOKEN ====================

func GenerateUUID() uuid.UUID {
	return uuid.New()
}

func GenerateSessionToken() uuid.UUID {
	return uuid.New()
}

// MovieID derives a stable identifier from a movie title so that
// catalog reloads and persisted reservations keep agreeing on it.
func MovieID(title string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(title))
}

// ==================== RESERVATION CODE ====================

// GenerateReservationCode creates a human-readable booking reference.
// Format: RSV-YYYYMMDD-HHMMSS-RANDOM
func GenerateReservationCode() string {
	now := time.Now()

	datePart := now.Format("20060102")
	timePart := now.Format("150405")
	randomPart := fmt.Sprintf("%04d", rand.Intn(10000))

	return fmt.Sprintf("RSV-%s-%s-%s", datePart, timePart, randomPart)
}
