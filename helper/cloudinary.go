package helper

import (
	"context"
	"mime/multipart"
	"os"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

func InitCloudinary() (*cloudinary.Cloudinary, error) {
	return cloudinary.NewFromParams(
		os.Getenv("CLOUDINARY_CLOUD_NAME"),
		os.Getenv("CLOUDINARY_API_KEY"),
		os.Getenv("CLOUDINARY_API_SECRET"),
	)
}

// UploadPlayImage pushes an uploaded file to Cloudinary and returns the
// public URL it is served from.
func UploadPlayImage(ctx context.Context, file *multipart.FileHeader, publicID string) (string, error) {
	cld, err := InitCloudinary()
	if err != nil {
		return "", err
	}

	fileReader, err := file.Open()
	if err != nil {
		return "", err
	}
	defer fileReader.Close()

	uploadResult, err := cld.Upload.Upload(ctx, fileReader, uploader.UploadParams{
		Folder:       "plays",
		PublicID:     publicID,
		ResourceType: "image",
	})
	if err != nil {
		return "", err
	}

	return uploadResult.SecureURL, nil
}
