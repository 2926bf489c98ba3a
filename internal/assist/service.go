// Package assist generates and reviews mod code, using a hosted model when an
// API key is configured and deterministic templates otherwise.
package assist

import (
	"context"
	"log"

	"modforge-backend/internal/models"
)

// Generator produces code and reviews from a request. RemoteGenerator talks
// to a hosted model; TemplateGenerator renders canned output.
type Generator interface {
	Generate(ctx context.Context, req models.GenerateRequest) (*models.GenerateResponse, error)
	Review(ctx context.Context, req models.ReviewRequest) (string, error)
}

// Service routes requests to the remote generator and falls back to templates
// when the remote is unconfigured or fails. Neither Generate nor Review ever
// returns an error: the caller always gets usable output.
type Service struct {
	remote   Generator
	fallback *TemplateGenerator
}

// NewService builds the assist service. remote may be nil, in which case
// every request is served from templates.
func NewService(remote Generator) *Service {
	return &Service{
		remote:   remote,
		fallback: NewTemplateGenerator(),
	}
}

// Generate produces code for a prompt. Remote failures are logged and
// answered from templates instead of surfacing to the client.
func (s *Service) Generate(ctx context.Context, req models.GenerateRequest) *models.GenerateResponse {
	if s.remote != nil {
		resp, err := s.remote.Generate(ctx, req)
		if err == nil {
			return resp
		}
		log.Printf("assist: remote generation failed, using template: %v", err)
	}
	resp, _ := s.fallback.Generate(ctx, req)
	return resp
}

// Review analyzes a file's code. Remote failures fall back to the heuristic
// template review.
func (s *Service) Review(ctx context.Context, req models.ReviewRequest) *models.ReviewResponse {
	if req.Code == "" {
		return &models.ReviewResponse{Review: "No code provided for review. Please select a file with content."}
	}
	if s.remote != nil {
		review, err := s.remote.Review(ctx, req)
		if err == nil {
			return &models.ReviewResponse{Review: review}
		}
		log.Printf("assist: remote review failed, using template: %v", err)
	}
	review, _ := s.fallback.Review(ctx, req)
	return &models.ReviewResponse{Review: review}
}
