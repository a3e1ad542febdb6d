package http

import (
	"net/http"
	"time"
)

type BasicAuth struct {
	Username string
	Password string
	// Realm announced in the authentication challenge
	Realm string
}

type Options struct {
	Address         string
	BaseURL         string
	BasicAuth       *BasicAuth
	AllowedOrigins  []string
	ShutdownTimeout time.Duration
	Mounts          map[string]http.Handler
}

type OptionFunc func(opts *Options)

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		Address:         ":8000",
		BaseURL:         "",
		AllowedOrigins:  []string{"*"},
		ShutdownTimeout: 10 * time.Second,
		Mounts:          map[string]http.Handler{},
	}
	for _, fn := range funcs {
		fn(opts)
	}
	return opts
}

func WithMount(prefix string, handler http.Handler) OptionFunc {
	return func(opts *Options) {
		opts.Mounts[prefix] = handler
	}
}

func WithBaseURL(baseURL string) OptionFunc {
	return func(opts *Options) {
		opts.BaseURL = baseURL
	}
}

func WithAddress(addr string) OptionFunc {
	return func(opts *Options) {
		opts.Address = addr
	}
}

func WithBasicAuth(username, password string) OptionFunc {
	return func(opts *Options) {
		opts.BasicAuth = &BasicAuth{
			Username: username,
			Password: password,
			Realm:    DefaultBasicAuthRealm,
		}
	}
}

func WithAllowedOrigins(origins ...string) OptionFunc {
	return func(opts *Options) {
		opts.AllowedOrigins = origins
	}
}

func WithShutdownTimeout(timeout time.Duration) OptionFunc {
	return func(opts *Options) {
		opts.ShutdownTimeout = timeout
	}
}
