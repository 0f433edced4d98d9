package server

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"fmt"
	"math/big"
	"time"
)

// StaticCertSource serves one fixed certificate for every ClientHello —
// either a file-backed pair or a runtime-generated self-signed one.
// This core never validates the client's certificate chain; requiring a
// cert without checking it is the wire protocol's way of forcing the
// client's QUIC stack to present one, not an identity check (that job
// belongs to the Session Service grant exchange).
type StaticCertSource struct {
	cert tls.Certificate
}

// NewSelfSignedCertSource generates a fresh self-signed RSA-2048
// certificate with subject CN=localhost, valid for one year.
func NewSelfSignedCertSource() (*StaticCertSource, error) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, fmt.Errorf("server: generate tls key: %w", err)
	}

	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 128))
	if err != nil {
		return nil, fmt.Errorf("server: generate serial: %w", err)
	}

	template := &x509.Certificate{
		SerialNumber:          serial,
		Subject:               pkix.Name{CommonName: "localhost"},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(365 * 24 * time.Hour),
		KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageKeyEncipherment,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		DNSNames:              []string{"localhost"},
		BasicConstraintsValid: true,
	}

	der, err := x509.CreateCertificate(rand.Reader, template, template, &key.PublicKey, key)
	if err != nil {
		return nil, fmt.Errorf("server: create certificate: %w", err)
	}

	return &StaticCertSource{
		cert: tls.Certificate{Certificate: [][]byte{der}, PrivateKey: key},
	}, nil
}

// LoadCertSource reads a file-backed certificate pair.
func LoadCertSource(certFile, keyFile string) (*StaticCertSource, error) {
	cert, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return nil, fmt.Errorf("server: load cert pair: %w", err)
	}
	return &StaticCertSource{cert: cert}, nil
}

func (s *StaticCertSource) GetCertificate(*tls.ClientHelloInfo) (*tls.Certificate, error) {
	return &s.cert, nil
}
