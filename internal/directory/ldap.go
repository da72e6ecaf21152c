package directory

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/go-ldap/ldap/v3"
	"go.uber.org/zap"

	"github.com/tritonops/admin-gateway/internal/config"
)

// LDAPClient binds and searches a UFDS-style directory over ldap:// or
// ldaps://, selected by the endpoint scheme.
type LDAPClient struct {
	endpoint       string
	secured        bool
	baseDN         string
	userDNTemplate string
	tlsConfig      *tls.Config
	timeout        time.Duration
	logger         *zap.Logger
}

// NewLDAPClient validates the endpoint and builds a client. An unparseable
// endpoint or unsupported scheme is a startup-time failure.
func NewLDAPClient(cfg config.DirectoryConfig, logger *zap.Logger) (*LDAPClient, error) {
	parsed, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid directory endpoint %q: %w", cfg.URL, err)
	}

	var secured bool
	switch parsed.Scheme {
	case "ldap":
	case "ldaps":
		secured = true
	default:
		return nil, fmt.Errorf("unsupported directory scheme %q", parsed.Scheme)
	}

	tlsConfig := &tls.Config{InsecureSkipVerify: !cfg.VerifyCertificates} //nolint:gosec
	if secured && !cfg.VerifyCertificates {
		logger.Warn("directory certificate verification is DISABLED; do not use outside development",
			zap.String("endpoint", cfg.URL))
	}

	return &LDAPClient{
		endpoint:       cfg.URL,
		secured:        secured,
		baseDN:         cfg.BaseDN,
		userDNTemplate: cfg.UserDNTemplate,
		tlsConfig:      tlsConfig,
		timeout:        cfg.BindTimeout(),
		logger:         logger,
	}, nil
}

// BindAndFetch opens a connection, binds with the user's credentials, and on
// success searches for the person entry under the base DN. One connection and
// one attempt per call.
func (c *LDAPClient) BindAndFetch(ctx context.Context, username, password string) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, NewError(KindConnection, err)
	}

	conn, err := ldap.DialURL(c.endpoint, ldap.DialWithTLSConfig(c.tlsConfig))
	if err != nil {
		if c.secured && isCertificateError(err) {
			return nil, NewError(KindTLS, err)
		}
		return nil, NewError(KindConnection, err)
	}
	defer conn.Close()

	conn.SetTimeout(c.timeout)

	userDN := fmt.Sprintf(c.userDNTemplate, ldap.EscapeDN(username))
	c.logger.Debug("binding to directory", zap.String("dn", userDN))

	if err := conn.Bind(userDN, password); err != nil {
		if ldap.IsErrorWithCode(err, ldap.ErrorNetwork) {
			return nil, NewError(KindConnection, err)
		}
		return nil, NewError(KindAuthentication, err)
	}

	filter := fmt.Sprintf("(&(objectClass=sdcPerson)(cn=%s))", ldap.EscapeFilter(username))
	req := ldap.NewSearchRequest(
		c.baseDN,
		ldap.ScopeWholeSubtree, ldap.NeverDerefAliases, 0, 0, false,
		filter,
		personAttributes,
		nil,
	)

	result, err := conn.Search(req)
	if err != nil {
		return nil, NewError(KindSearch, err)
	}

	if len(result.Entries) == 0 {
		return nil, NewError(KindIdentityNotFound, fmt.Errorf("no entry for %q under %s", username, c.baseDN))
	}

	entry := result.Entries[0]
	attrs := make(map[string][]string, len(personAttributes))
	for _, name := range personAttributes {
		if values := entry.GetEqualFoldAttributeValues(name); len(values) > 0 {
			attrs[name] = values
		}
	}

	return recordFromAttributes(username, attrs)
}

func isCertificateError(err error) bool {
	var (
		unknownAuthority x509.UnknownAuthorityError
		hostname         x509.HostnameError
		invalid          x509.CertificateInvalidError
		record           tls.RecordHeaderError
	)
	return errors.As(err, &unknownAuthority) ||
		errors.As(err, &hostname) ||
		errors.As(err, &invalid) ||
		errors.As(err, &record)
}
