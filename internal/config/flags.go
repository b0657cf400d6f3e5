package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// String returns the address in "host:port" form, or an empty string when
// the address was never set.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}
	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Set parses a "[host]:[port]" string into the receiver.
// Implements flag.Value.
func (a *NetAddress) Set(value string) error {
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return errors.New("need address in a form host:port")
	}

	port, err := strconv.Atoi(parts[1])
	if err != nil {
		return err
	}

	a.Host = parts[0]
	a.Port = port

	return nil
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-c/-config json file path with configs
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "168h")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-public-url public card URL base encoded into share codes
//	-file-base-url base URL prefixed onto stored asset paths
//	-s3-endpoint, -s3-region, -s3-bucket blob store location
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var databaseDSN string
	var jsonConfigPath string
	var tokenSignKey string
	var tokenIssuer string
	var tokenDuration time.Duration
	var requestTimeout time.Duration
	var publicURL string
	var fileBaseURL string
	var s3Endpoint, s3Region, s3Bucket string

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	flag.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	flag.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 168h)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.StringVar(&publicURL, "public-url", "", "Public card URL base")
	flag.StringVar(&fileBaseURL, "file-base-url", "", "Asset file base URL")
	flag.StringVar(&s3Endpoint, "s3-endpoint", "", "S3 base endpoint (empty for AWS)")
	flag.StringVar(&s3Region, "s3-region", "", "S3 region")
	flag.StringVar(&s3Bucket, "s3-bucket", "", "S3 bucket for card assets")

	flag.Parse()

	return &StructuredConfig{
		Auth: Auth{
			TokenSignKey:  tokenSignKey,
			TokenIssuer:   tokenIssuer,
			TokenDuration: tokenDuration,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
			S3: S3{
				BaseEndpoint: s3Endpoint,
				Region:       s3Region,
				Bucket:       s3Bucket,
			},
		},
		Cards: Cards{
			PublicURL:   publicURL,
			FileBaseURL: fileBaseURL,
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		JSONFilePath: jsonConfigPath,
	}
}
