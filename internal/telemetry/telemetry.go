/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package telemetry sends opt-in, anonymous usage events (which shapes and
// layer kinds get generated, which formats get exported) and optional crash
// reports. It is disabled unless both the opt-in and an endpoint are set.
package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	applog "gosigil/internal/log"
	"gosigil/internal/version"
)

// Environment variables read by FromEnv.
const (
	EnvOptIn     = "GSG_TELEMETRY_OPT_IN"
	EnvEventsURL = "GSG_TELEMETRY_URL"
	EnvCrashURL  = "GSG_CRASH_UPLOAD_URL"
	EnvTimeoutMs = "GSG_TELEMETRY_TIMEOUT_MS"
	EnvDebug     = "GSG_TELEMETRY_DEBUG"
)

// Event names.
const (
	EventGenerated = "sigil.generated"
	EventExported  = "sigil.exported"
	EventAnimated  = "sigil.animated"
)

// Config holds runtime configuration for events and crash uploads.
// Without URLs every call is a no-op even when OptIn is true.
type Config struct {
	OptIn        bool
	EventsURL    string
	CrashURL     string
	Timeout      time.Duration
	DebugLogging bool
}

func FromEnv() Config {
	cfg := Config{
		OptIn:        parseBool(os.Getenv(EnvOptIn)),
		EventsURL:    strings.TrimSpace(os.Getenv(EnvEventsURL)),
		CrashURL:     strings.TrimSpace(os.Getenv(EnvCrashURL)),
		Timeout:      1500 * time.Millisecond,
		DebugLogging: os.Getenv(EnvDebug) != "",
	}
	if ms := strings.TrimSpace(os.Getenv(EnvTimeoutMs)); ms != "" {
		if v, err := time.ParseDuration(ms + "ms"); err == nil {
			cfg.Timeout = v
		}
	}
	return cfg
}

func parseBool(v string) bool {
	s := strings.ToLower(strings.TrimSpace(v))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}

// Payload is the JSON body of one event. Props must never carry colors,
// paths or anything else a user typed.
type Payload struct {
	Name    string         `json:"name"`
	TS      string         `json:"ts"`
	Session string         `json:"session"`
	Version string         `json:"version"`
	OS      string         `json:"os"`
	Arch    string         `json:"arch"`
	Props   map[string]any `json:"props,omitempty"`
}

// Client is an async sender with a bounded queue. Send errors are dropped.
type Client struct {
	cfg     Config
	log     *slog.Logger
	cli     *http.Client
	session string
	q       chan Payload
	wg      sync.WaitGroup

	// mu orders queueing against Close so nothing is queued after the
	// sender stopped.
	mu     sync.Mutex
	done   bool
	once   sync.Once
	closed chan struct{}
}

var (
	defaultClient *Client
	defaultOnce   sync.Once
)

// InitDefault installs the package default client from env on first use.
func InitDefault() {
	defaultOnce.Do(func() {
		if defaultClient == nil {
			defaultClient = New(FromEnv())
		}
	})
}

// NewDefault replaces the default client.
func NewDefault(cfg Config) {
	defaultOnce.Do(func() {})
	defaultClient = New(cfg)
}

// New constructs a client and starts its sender.
func New(cfg Config) *Client {
	c := &Client{
		cfg:     cfg,
		log:     applog.WithComponent("telemetry"),
		cli:     &http.Client{Timeout: cfg.Timeout},
		session: uuid.NewString(),
		q:       make(chan Payload, 64),
		closed:  make(chan struct{}),
	}
	go c.loop()
	return c
}

// Enabled reports whether events are sent at all.
func (c *Client) Enabled() bool { return c != nil && c.cfg.OptIn && c.cfg.EventsURL != "" }

func Enabled() bool {
	InitDefault()
	return defaultClient.Enabled()
}

// Session identifies this process in every event.
func (c *Client) Session() string { return c.session }

// Event queues name with props. It never blocks; a full queue drops the event.
func (c *Client) Event(name string, props map[string]any) {
	if !c.Enabled() || name == "" {
		return
	}
	p := Payload{
		Name:    name,
		TS:      time.Now().UTC().Format(time.RFC3339Nano),
		Session: c.session,
		Version: version.String(),
		OS:      runtime.GOOS,
		Arch:    runtime.GOARCH,
	}
	if len(props) > 0 {
		p.Props = make(map[string]any, len(props))
		for k, v := range props {
			p.Props[k] = v
		}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done {
		return
	}
	c.wg.Add(1)
	select {
	case c.q <- p:
	default:
		c.wg.Done()
	}
}

func Event(name string, props map[string]any) { InitDefault(); defaultClient.Event(name, props) }

// Flush waits until queued events are sent or ctx ends. A CLI calls it once
// before exiting.
func (c *Client) Flush(ctx context.Context) {
	if c == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
	}
}

func Flush(ctx context.Context) {
	if defaultClient != nil {
		defaultClient.Flush(ctx)
	}
}

// Close stops the sender. Queued events are dropped and later ones ignored.
func (c *Client) Close() {
	c.once.Do(func() {
		c.mu.Lock()
		c.done = true
		c.mu.Unlock()
		close(c.closed)
	})
}

func (c *Client) loop() {
	for {
		select {
		case <-c.closed:
			for {
				select {
				case <-c.q:
					c.wg.Done()
				default:
					return
				}
			}
		case p := <-c.q:
			c.send(p)
			c.wg.Done()
		}
	}
}

func (c *Client) send(p Payload) {
	buf, err := json.Marshal(p)
	if err != nil {
		return
	}
	c.post(c.cfg.EventsURL, "application/json", buf, "event")
}

func (c *Client) post(url, contentType string, body []byte, what string) {
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", contentType)
	resp, err := c.cli.Do(req)
	if err != nil {
		if c.cfg.DebugLogging {
			c.log.Debug(what+" send failed", slog.Any("err", err))
		}
		return
	}
	_ = resp.Body.Close()
	if c.cfg.DebugLogging {
		c.log.Debug(what+" sent", slog.Int("status", resp.StatusCode))
	}
}

// UploadCrash posts a crash report synchronously; the process is about to exit.
func (c *Client) UploadCrash(report []byte) {
	if c == nil || !c.cfg.OptIn || c.cfg.CrashURL == "" {
		return
	}
	c.post(c.cfg.CrashURL, "text/plain; charset=utf-8", report, "crash report")
}

func UploadCrash(report []byte) { InitDefault(); defaultClient.UploadCrash(report) }
