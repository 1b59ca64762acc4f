// Package core assembles the booknet backend from configuration: the REST
// client, the session store and notification channel managers. Commands
// are registered before configuration is loaded, so everything is built on
// first use.
package core

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/cristianoliveira/booknet/internal/alert"
	"github.com/cristianoliveira/booknet/internal/api"
	"github.com/cristianoliveira/booknet/internal/config"
	"github.com/cristianoliveira/booknet/internal/domain"
	"github.com/cristianoliveira/booknet/internal/library"
	"github.com/cristianoliveira/booknet/internal/logging"
	"github.com/cristianoliveira/booknet/internal/notify"
	"github.com/cristianoliveira/booknet/internal/paged"
	"github.com/cristianoliveira/booknet/internal/search"
	"github.com/cristianoliveira/booknet/internal/session"
	"github.com/cristianoliveira/booknet/internal/settings"
	"github.com/cristianoliveira/booknet/internal/version"
)

// Config holds everything needed to reach the backend.
type Config struct {
	BaseURL         string
	WSURL           string
	Token           string
	TokenFile       string
	Timeout         time.Duration
	RateLimit       float64
	RateBurst       int
	PageSize        int
	MyBooksPageSize int
	FetchAllSize    int
	DefaultView     string
	SearchMode      string
	SettingsPath    string
	HTTPClient      *http.Client
	Logger          logging.Logger
}

// FromConfig reads Config from the loaded configuration.
func FromConfig() Config {
	return Config{
		BaseURL:         config.Get("api_base_url", api.DefaultBaseURL),
		WSURL:           config.Get("ws_url", ""),
		Token:           config.Get("token", ""),
		TokenFile:       config.Get("token_file", ""),
		Timeout:         config.GetDuration("request_timeout", 15*time.Second),
		RateLimit:       config.GetFloat("rate_limit", 0),
		RateBurst:       config.GetInt("rate_burst", 1),
		PageSize:        config.GetInt("page_size", 6),
		MyBooksPageSize: config.GetInt("my_books_page_size", 3),
		FetchAllSize:    config.GetInt("fetch_all_size", paged.DefaultFetchAllSize),
		DefaultView:     config.Get("default_view", settings.DefaultView),
		SearchMode:      config.Get("search_mode", "substring"),
		SettingsPath:    settings.Path(),
		Logger:          logging.GetGlobal(),
	}
}

// Core is the backend facade used by commands and the TUI.
type Core struct {
	load func() Config

	once    sync.Once
	err     error
	cfg     Config
	store   *session.Store
	session *session.Session
	client  *api.Client
}

var (
	_ library.Service  = (*Core)(nil)
	_ notify.Directory = (*Core)(nil)
)

// NewCore creates a Core reading its Config from load on first use.
// A nil load means FromConfig.
func NewCore(load func() Config) *Core {
	if load == nil {
		load = FromConfig
	}
	return &Core{load: load}
}

func (c *Core) init() error {
	c.once.Do(func() {
		cfg := c.load()
		if cfg.Logger == nil {
			cfg.Logger = logging.GetGlobal()
		}
		if cfg.SettingsPath == "" {
			cfg.SettingsPath = settings.Path()
		}
		c.cfg = cfg
		c.store = session.NewStore(cfg.TokenFile)

		sess, err := session.Resolve(cfg.Token, c.store)
		if err != nil {
			c.err = fmt.Errorf("core: load session: %w", err)
			return
		}
		c.session = sess

		c.client, err = api.New(api.Options{
			BaseURL:    cfg.BaseURL,
			Timeout:    cfg.Timeout,
			RateLimit:  cfg.RateLimit,
			RateBurst:  cfg.RateBurst,
			Session:    sess,
			Logger:     cfg.Logger,
			HTTPClient: cfg.HTTPClient,
		})
		if err != nil {
			c.err = fmt.Errorf("core: %w", err)
		}
	})
	return c.err
}

func (c *Core) api() (*api.Client, error) {
	if err := c.init(); err != nil {
		return nil, err
	}
	return c.client, nil
}

// Session returns the credential resolved from the configured token or the
// token file.
func (c *Core) Session() (session.Source, error) {
	if err := c.init(); err != nil {
		return nil, err
	}
	return c.session, nil
}

// ConfiguredToken returns the token set through configuration, if any.
func (c *Core) ConfiguredToken() string {
	_ = c.init()
	return c.cfg.Token
}

// SessionStore returns the token file store. It is usable even when the
// backend settings are invalid.
func (c *Core) SessionStore() *session.Store {
	_ = c.init()
	return c.store
}

// NewManager builds a notification channel manager over the REST client and
// the STOMP push channel. Presenter receives the channel's alerts.
func (c *Core) NewManager(presenter alert.Presenter) (*notify.Manager, error) {
	if err := c.init(); err != nil {
		return nil, err
	}
	var dialer notify.Dialer
	if c.cfg.WSURL != "" {
		dialer = &notify.StompDialer{
			URL:               c.cfg.WSURL,
			ConnectTimeout:    c.cfg.Timeout,
			DisconnectTimeout: c.cfg.Timeout,
			Logger:            c.cfg.Logger,
		}
	}
	return notify.NewManager(notify.Options{
		Directory: c,
		Dialer:    dialer,
		Session:   c.session,
		Presenter: presenter,
		Logger:    c.cfg.Logger,
	}), nil
}

// LibraryOptions returns the section options for the configured page sizes.
func (c *Core) LibraryOptions(presenter alert.Presenter) library.Options {
	_ = c.init()
	return library.Options{
		Service:         c,
		PageSize:        c.cfg.PageSize,
		MyBooksPageSize: c.cfg.MyBooksPageSize,
		FetchAllSize:    c.cfg.FetchAllSize,
		Provider:        search.ForMode(c.cfg.SearchMode),
		Presenter:       presenter,
		Logger:          c.cfg.Logger,
	}
}

// LoadSettings reads the persisted preferences.
func (c *Core) LoadSettings() (*settings.Settings, error) {
	_ = c.init()
	return settings.LoadFrom(c.cfg.SettingsPath)
}

// SaveSettings persists s.
func (c *Core) SaveSettings(s *settings.Settings) error {
	_ = c.init()
	return settings.SaveTo(c.cfg.SettingsPath, s)
}

// ResetSettings overwrites the preferences with defaults. The configured
// default view is honored.
func (c *Core) ResetSettings() (*settings.Settings, error) {
	_ = c.init()
	s := settings.DefaultSettings()
	s.ActiveView = settings.NormalizeView(c.cfg.DefaultView)
	if err := settings.SaveTo(c.cfg.SettingsPath, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Version returns the build version.
func (c *Core) Version() string {
	return version.String()
}

// GetUserNotifications implements notify.Directory.
func (c *Core) GetUserNotifications(ctx context.Context) ([]domain.Notification, error) {
	client, err := c.api()
	if err != nil {
		return nil, err
	}
	return client.GetUserNotifications(ctx)
}

// MarkNotificationAsRead implements notify.Directory.
func (c *Core) MarkNotificationAsRead(ctx context.Context, id int) (domain.Notification, error) {
	client, err := c.api()
	if err != nil {
		return domain.Notification{}, err
	}
	return client.MarkNotificationAsRead(ctx, id)
}

// MarkAllNotificationsAsRead implements notify.Directory.
func (c *Core) MarkAllNotificationsAsRead(ctx context.Context) error {
	client, err := c.api()
	if err != nil {
		return err
	}
	return client.MarkAllNotificationsAsRead(ctx)
}
