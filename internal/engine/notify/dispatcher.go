// Package notify delivers join requests to the group leader through two
// best-effort channels: a spreadsheet-logging webhook and a chat message
// API. Channels are independent; neither failure aborts or rolls back the
// other, and nothing is retried.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/pazsp/lifefinder/internal/config"
	"github.com/pazsp/lifefinder/internal/model"
)

type Dispatcher struct {
	cfg  config.NotifyConfig
	http *http.Client
	log  *zap.Logger
}

func NewDispatcher(cfg config.NotifyConfig, log *zap.Logger) *Dispatcher {
	return &Dispatcher{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout()},
		log:  log,
	}
}

// webhookPayload mirrors the field names the spreadsheet script expects.
type webhookPayload struct {
	VisitanteNome string `json:"visitante_nome"`
	VisitanteZap  string `json:"visitante_zap"`
	LifeNome      string `json:"life_nome"`
	LiderNome     string `json:"lider_nome"`
	LiderZap      string `json:"lider_zap"`
	Modo          string `json:"modo"`
}

type webhookResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Dispatch attempts both channels and aggregates failures into the detail
// string. Overall success requires both channels; a partial failure still
// leaves the succeeded channel delivered.
func (d *Dispatcher) Dispatch(ctx context.Context, rec model.SignupRequest) (bool, string) {
	var details []string

	if err := d.sendWebhook(ctx, rec); err != nil {
		details = append(details, "webhook: "+err.Error())
	}
	if err := d.sendChat(ctx, rec); err != nil {
		details = append(details, "chat: "+err.Error())
	}

	if len(details) > 0 {
		detail := strings.Join(details, "; ")
		d.log.Warn("signup dispatch failed",
			zap.String("group", rec.GroupName), zap.String("detail", detail))
		return false, detail
	}

	d.log.Info("signup dispatched",
		zap.String("group", rec.GroupName), zap.String("visitor", rec.VisitorName))
	return true, ""
}

func (d *Dispatcher) sendWebhook(ctx context.Context, rec model.SignupRequest) error {
	if d.cfg.WebhookURL == "" {
		return errors.New("webhook URL not configured")
	}

	body, err := json.Marshal(webhookPayload{
		VisitanteNome: rec.VisitorName,
		VisitanteZap:  rec.VisitorPhone,
		LifeNome:      rec.GroupName,
		LiderNome:     rec.LeaderName,
		LiderZap:      rec.LeaderPhone,
		Modo:          rec.Mode,
	})
	if err != nil {
		return fmt.Errorf("encoding payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.cfg.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.http.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	// The script answers 200 with an optional JSON status. A body that
	// isn't JSON still counts as delivered.
	var wr webhookResponse
	if err := json.NewDecoder(resp.Body).Decode(&wr); err != nil {
		return nil
	}
	if wr.Status != "" && wr.Status != "success" {
		if wr.Message != "" {
			return errors.New(wr.Message)
		}
		return fmt.Errorf("script reported status %q", wr.Status)
	}
	return nil
}

func (d *Dispatcher) sendChat(ctx context.Context, rec model.SignupRequest) error {
	if d.cfg.ChatURL == "" {
		return errors.New("chat endpoint not configured")
	}

	u := d.cfg.ChatURL + "?" + url.Values{
		"phone":  {rec.LeaderPhone},
		"text":   {Message(rec)},
		"apikey": {d.cfg.ChatAPIKey},
	}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	resp, err := d.http.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}

// Message renders the chat text sent to the leader.
func Message(rec model.SignupRequest) string {
	return fmt.Sprintf(
		"Olá, %s! %s quer participar do LifeGroup %s (%s). WhatsApp: %s",
		rec.LeaderName, rec.VisitorName, rec.GroupName, rec.Mode, rec.VisitorPhone,
	)
}

// Link builds the wa.me deep link offered as a manual fallback whenever a
// usable leader number exists.
func Link(leaderPhone, visitorName, groupName string) string {
	msg := fmt.Sprintf("Olá, sou %s. Tenho interesse no LifeGroup %s.", visitorName, groupName)
	return "https://wa.me/" + leaderPhone + "?text=" + url.QueryEscape(msg)
}
