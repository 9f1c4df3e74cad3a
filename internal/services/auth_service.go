package services

import (
	"errors"

	"autovitrine/internal/config"
	"autovitrine/internal/session"
	"autovitrine/internal/store"
)

var (
	ErrBadCreds      = errors.New("invalid username or password")
	ErrNotStoreAdmin = errors.New("session is not bound to a store")
	ErrWeakPassword  = errors.New("password must have at least 6 characters")
)

// AuthService owns both session registries and the three login paths: the
// legacy fixed admin account, per-store admin credentials, and the master
// operator account.
type AuthService struct {
	cfg    config.Config
	stores *store.Registry
	Admin  *session.Registry
	Master *session.Registry
}

func NewAuthService(cfg config.Config, stores *store.Registry, admin, master *session.Registry) *AuthService {
	return &AuthService{cfg: cfg, stores: stores, Admin: admin, Master: master}
}

// AdminLogin validates against a store's credentials when a slug is given,
// and against the fixed legacy admin account otherwise. The returned bool
// reports whether the session is store-scoped.
func (s *AuthService) AdminLogin(username, password, storeSlug string) (session.Session, bool, error) {
	if storeSlug != "" {
		st, ok := s.stores.VerifyAdmin(store.Slugify(storeSlug), username, password)
		if !ok {
			return session.Session{}, false, ErrBadCreds
		}
		return s.Admin.Issue(username, st.Slug), true, nil
	}
	if username == s.cfg.AdminUser && password == s.cfg.AdminPass {
		return s.Admin.Issue(username, ""), false, nil
	}
	return session.Session{}, false, ErrBadCreds
}

func (s *AuthService) MasterLogin(username, password string) (session.Session, error) {
	if username == s.cfg.MasterUser && password == s.cfg.MasterPass {
		return s.Master.Issue(username, ""), nil
	}
	return session.Session{}, ErrBadCreds
}

// ChangeStorePassword re-verifies the current credential, persists the new
// hash, and revokes every other session bound to the store.
func (s *AuthService) ChangeStorePassword(sess session.Session, current, next string) error {
	if sess.StoreSlug == "" {
		return ErrNotStoreAdmin
	}
	if len(next) < 6 {
		return ErrWeakPassword
	}
	if _, ok := s.stores.VerifyAdmin(sess.StoreSlug, sess.Subject, current); !ok {
		return ErrBadCreds
	}
	if err := s.stores.SetAdminPassword(sess.StoreSlug, next); err != nil {
		return err
	}
	s.Admin.RevokeStore(sess.StoreSlug, sess.Token)
	return nil
}
