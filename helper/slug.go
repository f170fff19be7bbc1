package helper

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// PlayImagePublicID builds the storage id for an uploaded play image:
// slugified title plus a short random suffix so re-uploads never collide.
func PlayImagePublicID(title string) string {
	return fmt.Sprintf("%s-%s", slug.Make(title), uuid.New().String()[:8])
}

// ReservationPublicCode builds the public code printed on confirmations.
func ReservationPublicCode() string {
	return "RSV-" + uuid.New().String()[:8]
}
