package store

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	intconfig "listing/internal/config"
	"listing/internal/domain"
	"listing/internal/domain/models"
)

// maxPayloadBytes caps how much of a remote payload is read.
const maxPayloadBytes = 256 << 20

// Source produces the dataset once at startup.
type Source interface {
	Records(ctx context.Context) ([]models.Record, error)
	String() string
}

// Options configures OpenSource.
type Options struct {
	MySQLDSN   string
	MySQLTable string
	AWSRegion  string
	HTTPClient *http.Client
}

// OpenSource picks a Source by URI scheme: http(s)://, s3://bucket/key,
// mysql://<dsn> (or "mysql" with Options.MySQLDSN), file:// or a plain path.
func OpenSource(ctx context.Context, uri string, opts Options) (Source, error) {
	uri = strings.TrimSpace(uri)
	switch {
	case uri == "":
		return nil, domain.ValidationError{Field: "source", Msg: "data source is empty"}

	case strings.HasPrefix(uri, "http://"), strings.HasPrefix(uri, "https://"):
		return HTTPSource{URL: uri, Client: opts.HTTPClient}, nil

	case strings.HasPrefix(uri, "s3://"):
		bucket, key, ok := strings.Cut(strings.TrimPrefix(uri, "s3://"), "/")
		if !ok || bucket == "" || key == "" {
			return nil, domain.ValidationError{Field: "source", Msg: "expected s3://bucket/key"}
		}
		var loadOpts []func(*awsconfig.LoadOptions) error
		if opts.AWSRegion != "" {
			loadOpts = append(loadOpts, awsconfig.WithRegion(opts.AWSRegion))
		}
		cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
		if err != nil {
			return nil, domain.LoadError{Source: uri, Err: err}
		}
		return S3Source{Client: s3.NewFromConfig(cfg), Bucket: bucket, Key: key}, nil

	case uri == "mysql", strings.HasPrefix(uri, "mysql://"):
		dsn := strings.TrimPrefix(uri, "mysql://")
		if uri == "mysql" {
			dsn = opts.MySQLDSN
		}
		db, err := intconfig.ConnectDB(dsn)
		if err != nil {
			return nil, domain.LoadError{Source: "mysql", Err: err}
		}
		return MySQLSource{DB: db, Table: opts.MySQLTable}, nil

	default:
		return FileSource{Path: strings.TrimPrefix(uri, "file://")}, nil
	}
}

// FileSource reads the payload from a local file.
type FileSource struct {
	Path string
}

func (s FileSource) String() string { return s.Path }

func (s FileSource) Records(ctx context.Context) ([]models.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.LoadError{Source: s.Path, Err: err}
	}
	raw, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, domain.LoadError{Source: s.Path, Err: err}
	}
	return loadFrom(s.Path, raw)
}

// HTTPSource fetches the payload with a single GET; there is no retry.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

func (s HTTPSource) String() string { return s.URL }

func (s HTTPSource) Records(ctx context.Context) ([]models.Record, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, domain.LoadError{Source: s.URL, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, domain.LoadError{Source: s.URL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, domain.LoadError{Source: s.URL, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
	if err != nil {
		return nil, domain.LoadError{Source: s.URL, Err: err}
	}
	return loadFrom(s.URL, raw)
}

func loadFrom(source string, raw []byte) ([]models.Record, error) {
	records, err := Load(raw)
	if err != nil {
		return nil, domain.LoadError{Source: source, Err: err}
	}
	return records, nil
}
