package services

import (
	"context"
	"strings"

	"github.com/museum-catalog/museum-backend/src/models"
	"github.com/museum-catalog/museum-backend/src/qr"
)

// ScanService turns scanned QR payloads into displayable artifacts.
type ScanService struct {
	artifacts *ArtifactService
}

func NewScanService(artifacts *ArtifactService) *ScanService {
	return &ScanService{artifacts: artifacts}
}

// Scan decodes payload and resolves the identifier it carries. An empty
// payload fails with ErrPayloadRequired before any decoding; undecodable or
// malformed payloads surface the codec or identity error; unknown and
// withdrawn artifacts yield ErrArtifactNotFound.
func (s *ScanService) Scan(ctx context.Context, payload string) (*models.ArtifactModel, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil, ErrPayloadRequired
	}

	candidate, err := qr.Decode(payload)
	if err != nil {
		return nil, err
	}
	return s.artifacts.Resolve(ctx, candidate)
}
