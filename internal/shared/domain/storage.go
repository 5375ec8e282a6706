package domain

import "context"

// ImageStore guarda imágenes recibidas como data URL base64 y devuelve el nombre del fichero.
type ImageStore interface {
	Save(ctx context.Context, dataURL string) (string, error)
	Remove(ctx context.Context, name string) error
}

// ErrInvalidImage se devuelve cuando el contenido base64 no se puede decodificar.
var ErrInvalidImage = Reject("Image is not valid")
