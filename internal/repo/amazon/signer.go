package amazon

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/awnumar/memguard"
	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/go-resty/resty/v2"
)

const serviceName = "ProductAdvertisingAPI"

var errEmptySecret = errors.New("amazon: empty secret key")

// enclaveCredentials keeps the secret key sealed in a memguard enclave and
// only opens it while a request is being signed.
type enclaveCredentials struct {
	accessKeyID string
	secret      *memguard.Enclave
}

func newEnclaveCredentials(accessKeyID, secretKey string) (aws.CredentialsProvider, error) {
	if secretKey == "" {
		return nil, errEmptySecret
	}
	return &enclaveCredentials{
		accessKeyID: accessKeyID,
		secret:      memguard.NewEnclave([]byte(secretKey)),
	}, nil
}

func (e *enclaveCredentials) Retrieve(ctx context.Context) (aws.Credentials, error) {
	buf, err := e.secret.Open()
	if err != nil {
		return aws.Credentials{}, fmt.Errorf("failed to open secret enclave: %w", err)
	}
	defer buf.Destroy()

	return aws.Credentials{
		AccessKeyID:     e.accessKeyID,
		SecretAccessKey: string(buf.Bytes()),
		Source:          "amznbot",
	}, nil
}

type payloadHashKey struct{}

func withPayload(ctx context.Context, payload []byte) context.Context {
	sum := sha256.Sum256(payload)
	return context.WithValue(ctx, payloadHashKey{}, hex.EncodeToString(sum[:]))
}

func payloadHash(ctx context.Context) string {
	if h, ok := ctx.Value(payloadHashKey{}).(string); ok {
		return h
	}
	sum := sha256.Sum256(nil)
	return hex.EncodeToString(sum[:])
}

type requestSigner struct {
	signer      *v4.Signer
	credentials aws.CredentialsProvider
	region      string
	nowFunc     func() time.Time
}

// preRequest is installed as the resty pre-request hook, so it sees the final
// *http.Request with every header already set.
func (s *requestSigner) preRequest(_ *resty.Client, req *http.Request) error {
	ctx := req.Context()
	creds, err := s.credentials.Retrieve(ctx)
	if err != nil {
		return fmt.Errorf("failed to retrieve credentials: %w", err)
	}
	if err := s.signer.SignHTTP(ctx, creds, req, payloadHash(ctx), serviceName, s.region, s.nowFunc()); err != nil {
		return fmt.Errorf("failed to sign request: %w", err)
	}
	return nil
}
