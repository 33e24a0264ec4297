package media

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

type fakePutter struct {
	input *s3.PutObjectInput
	body  string
	err   error
}

func (f *fakePutter) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	if params.Body != nil {
		data, _ := io.ReadAll(params.Body)
		f.body = string(data)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestObjectKey(t *testing.T) {
	key, err := ObjectKey("owner-1", "ship-1", "receipt", "image/png; charset=binary")
	if err != nil {
		t.Fatalf("object key failed: %v", err)
	}
	if !strings.HasPrefix(key, "owners/owner-1/shipments/ship-1/receipt-") || !strings.HasSuffix(key, ".png") {
		t.Fatalf("unexpected key %s", key)
	}

	if _, err := ObjectKey("owner-1", "ship-1", "receipt", "application/pdf"); !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected unsupported type, got %v", err)
	}
}

func TestDataURLStore(t *testing.T) {
	store := NewDataURLStore(16)

	ref, err := store.Put(context.Background(), "k", "image/jpeg", strings.NewReader("abc"))
	if err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if ref != "data:image/jpeg;base64,YWJj" {
		t.Fatalf("unexpected data url %s", ref)
	}

	if _, err := store.Put(context.Background(), "k", "image/jpeg", strings.NewReader(strings.Repeat("x", 17))); err == nil {
		t.Fatalf("expected oversized image to fail")
	}
}

func TestS3StorePutReturnsCloudFrontURL(t *testing.T) {
	client := &fakePutter{}
	store := &S3Store{Client: client, Bucket: "parcels", Region: "eu-west-1", CloudFrontDomain: "cdn.example.com"}

	url, err := store.Put(context.Background(), "owners/o/a.png", "image/png", strings.NewReader("png"))
	if err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if url != "https://cdn.example.com/owners/o/a.png" {
		t.Fatalf("unexpected url %s", url)
	}
	if *client.input.Bucket != "parcels" || *client.input.ContentType != "image/png" || client.body != "png" {
		t.Fatalf("unexpected put input %+v", client.input)
	}

	store.CloudFrontDomain = ""
	if got := store.URL("a.png"); got != "https://parcels.s3.eu-west-1.amazonaws.com/a.png" {
		t.Fatalf("unexpected s3 url %s", got)
	}
}

func TestS3StorePutWrapsAPIError(t *testing.T) {
	client := &fakePutter{err: &smithy.GenericAPIError{Code: "AccessDenied", Message: "denied"}}
	store := &S3Store{Client: client, Bucket: "parcels", Region: "eu-west-1"}

	_, err := store.Put(context.Background(), "a.png", "image/png", strings.NewReader("png"))
	if err == nil || !strings.Contains(err.Error(), "AccessDenied") {
		t.Fatalf("expected wrapped api error, got %v", err)
	}
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected api error to stay reachable")
	}
}
