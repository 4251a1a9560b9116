package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

var (
	S3Session       *session.Session
	S3Bucket        string
	S3Region        string
	S3Prefix        string
	BundleDir       string = "./bundles"
	UseLocalBundles bool   = true // Toggle: true = local dir, false = S3
)

// InitS3 switches the template bundle store to an S3 bucket.
func InitS3(bucket, region, prefix string) error {
	S3Bucket = bucket
	S3Region = region
	S3Prefix = strings.Trim(prefix, "/")

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return err
	}

	S3Session = sess
	UseLocalBundles = false
	return nil
}

func InitLocalBundles(dir string) error {
	if dir != "" {
		BundleDir = dir
	}
	return os.MkdirAll(BundleDir, 0o755)
}

func GetBundleMode() string {
	if UseLocalBundles {
		return "local"
	}
	return "s3"
}

func SetBundleMode(useLocal bool) {
	UseLocalBundles = useLocal
}

// ListBundles returns the names of every .json template bundle in the store.
func ListBundles() ([]string, error) {
	if UseLocalBundles {
		return listLocalBundles()
	}
	return listS3Bundles()
}

// ReadBundle returns the raw contents of one named bundle.
func ReadBundle(name string) ([]byte, error) {
	if UseLocalBundles {
		return os.ReadFile(filepath.Join(BundleDir, filepath.Base(name)))
	}
	return readS3Bundle(name)
}

func listLocalBundles() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(BundleDir, "*.json"))
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, filepath.Base(m))
	}
	return names, nil
}

func listS3Bundles() ([]string, error) {
	if S3Session == nil {
		return nil, fmt.Errorf("S3 not initialized, using local bundles instead")
	}

	svc := s3.New(S3Session)
	out, err := svc.ListObjectsV2(&s3.ListObjectsV2Input{
		Bucket: aws.String(S3Bucket),
		Prefix: aws.String(S3Prefix),
	})
	if err != nil {
		return nil, err
	}

	var names []string
	for _, obj := range out.Contents {
		key := aws.StringValue(obj.Key)
		if strings.HasSuffix(key, ".json") {
			names = append(names, strings.TrimPrefix(strings.TrimPrefix(key, S3Prefix), "/"))
		}
	}
	return names, nil
}

func readS3Bundle(name string) ([]byte, error) {
	if S3Session == nil {
		return nil, fmt.Errorf("S3 not initialized")
	}

	key := name
	if S3Prefix != "" {
		key = S3Prefix + "/" + name
	}

	svc := s3.New(S3Session)
	out, err := svc.GetObject(&s3.GetObjectInput{
		Bucket: aws.String(S3Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, err
	}
	defer out.Body.Close()

	return io.ReadAll(out.Body)
}
