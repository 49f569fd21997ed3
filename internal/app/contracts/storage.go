package contracts

import "context"

type Storage interface {
	PutDocument(ctx context.Context, bucketName, objectName, contentType string, body []byte) (string, error)
}
