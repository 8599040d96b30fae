package imagestore

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/chai2010/webp"
	"github.com/google/uuid"
	"golang.org/x/image/draw"

	"github.com/agendahub/agenda-api/internal/config"
)

// Largura máxima armazenada; acima disso a imagem é reduzida.
const maxWidth = 1024

// Store recebe a referência de imagem enviada no cadastro do serviço e
// devolve a referência a persistir. Data-URL base64 vira objeto WebP no
// bucket; qualquer outra string (URL externa, caminho) passa intacta.
type Store interface {
	Save(ctx context.Context, accountID uint, ref string) (string, error)
}

// ===============================
// S3
// ===============================

type S3Store struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
}

func NewS3Store(cfg *config.Config) *S3Store {
	awsCfg := aws.Config{
		Region: cfg.S3Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		),
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	base := cfg.S3PublicBaseURL
	if base == "" {
		base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, cfg.S3Region)
	}

	return &S3Store{
		client:        client,
		bucket:        cfg.S3Bucket,
		publicBaseURL: strings.TrimRight(base, "/"),
	}
}

func (s *S3Store) Save(ctx context.Context, accountID uint, ref string) (string, error) {
	raw, ok := decodeDataURL(ref)
	if !ok {
		return ref, nil
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	img = shrink(img)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: 80}); err != nil {
		return "", fmt.Errorf("encode webp: %w", err)
	}

	key := fmt.Sprintf("services/%d/%s.webp", accountID, uuid.NewString())

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("image/webp"),
	})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}

	return s.publicBaseURL + "/" + key, nil
}

// decodeDataURL extrai os bytes de um data-URL base64 de imagem.
func decodeDataURL(ref string) ([]byte, bool) {
	if !strings.HasPrefix(ref, "data:image/") {
		return nil, false
	}

	idx := strings.Index(ref, ";base64,")
	if idx < 0 {
		return nil, false
	}

	raw, err := base64.StdEncoding.DecodeString(ref[idx+len(";base64,"):])
	if err != nil {
		return nil, false
	}

	return raw, true
}

func shrink(img image.Image) image.Image {
	b := img.Bounds()
	if b.Dx() <= maxWidth {
		return img
	}

	h := b.Dy() * maxWidth / b.Dx()
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
