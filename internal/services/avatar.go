package services

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	"github.com/yungbote/tenancy-backend/internal/logger"
	"github.com/yungbote/tenancy-backend/internal/types"
)

// AvatarService renders an initials avatar for a freshly provisioned
// user and stores it under the media root.
type AvatarService interface {
	CreateUserAvatar(ctx context.Context, user *types.User) error
}

type avatarService struct {
	log          *logger.Logger
	mediaRoot    string
	mediaBaseURL string

	bgColors []color.NRGBA
	rng      *rand.Rand

	fontFace font.Face
}

var defaultAvatarColors = []color.NRGBA{
	{R: 0x2E, G: 0x86, B: 0xAB, A: 0xFF},
	{R: 0xF2, G: 0x6A, B: 0x4F, A: 0xFF},
	{R: 0x5B, G: 0x8C, B: 0x5A, A: 0xFF},
	{R: 0x8E, G: 0x6C, B: 0xB8, A: 0xFF},
	{R: 0xC9, G: 0x4C, B: 0x7C, A: 0xFF},
	{R: 0x3D, G: 0x5A, B: 0x80, A: 0xFF},
}

func NewAvatarService(log *logger.Logger, mediaRoot, mediaBaseURL string) (AvatarService, error) {
	serviceLog := log.With("service", "AvatarService")

	if strings.TrimSpace(mediaRoot) == "" {
		return nil, fmt.Errorf("media root is empty")
	}
	if err := os.MkdirAll(mediaRoot, 0o755); err != nil {
		return nil, fmt.Errorf("could not create media root: %w", err)
	}

	fontPath := os.Getenv("AVATAR_FONT")
	if strings.TrimSpace(fontPath) == "" {
		return nil, fmt.Errorf("Env var AVATAR_FONT is empty")
	}
	serviceLog.Info("Loading avatar font", "font", fontPath)

	face, err := loadFontFace(fontPath, 206)
	if err != nil {
		return nil, fmt.Errorf("could not load avatar font: %w", err)
	}

	return &avatarService{
		log:          serviceLog,
		mediaRoot:    mediaRoot,
		mediaBaseURL: strings.TrimRight(mediaBaseURL, "/"),
		bgColors:     defaultAvatarColors,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
		fontFace:     face,
	}, nil
}

func (as *avatarService) CreateUserAvatar(ctx context.Context, user *types.User) error {
	if user == nil {
		return fmt.Errorf("user required")
	}
	as.ensureAvatarColor(user)

	buf, err := as.renderAvatar(user)
	if err != nil {
		return err
	}

	oldKey := strings.TrimSpace(user.AvatarMediaKey)

	// Versioned key so browsers never serve a stale cached avatar.
	newKey := fmt.Sprintf("user_avatar/%s/%d.png", user.ID.String(), time.Now().UnixNano())

	dest := filepath.Join(as.mediaRoot, filepath.FromSlash(newKey))
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("failed to prepare avatar directory: %w", err)
	}
	if err := os.WriteFile(dest, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write user avatar: %w", err)
	}

	user.AvatarMediaKey = newKey
	user.AvatarURL = as.mediaBaseURL + "/" + newKey

	// Best-effort delete old AFTER we have a new one
	if oldKey != "" && oldKey != newKey {
		oldPath := filepath.Join(as.mediaRoot, filepath.FromSlash(oldKey))
		if err := os.Remove(oldPath); err != nil && !os.IsNotExist(err) {
			as.log.Warn("failed to delete old avatar (ignored)", "oldKey", oldKey, "error", err)
		}
	}

	return nil
}

func (as *avatarService) renderAvatar(user *types.User) (bytes.Buffer, error) {
	const size = 512

	dc := gg.NewContext(size, size)

	// Clip to circle
	dc.DrawCircle(float64(size)/2, float64(size)/2, float64(size)/2)
	dc.Clip()

	// Fill bg
	base := as.pickColor(user.AvatarColor)
	dc.SetColor(base)
	dc.DrawRectangle(0, 0, float64(size), float64(size))
	dc.Fill()

	// Initials
	initials := computeInitials(user.FirstName, user.LastName)

	dc.SetFontFace(as.fontFace)
	tw, th := dc.MeasureString(initials)
	cx, cy := float64(size)/2, float64(size)/2

	dc.SetColor(color.White)
	dc.DrawString(initials, cx-(tw/2)+5, cy+(th/2)-10)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return buf, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf, nil
}

func (as *avatarService) ensureAvatarColor(user *types.User) {
	if normalizeHex(user.AvatarColor) != "" {
		user.AvatarColor = normalizeHex(user.AvatarColor)
		return
	}
	pick := as.bgColors[as.rng.Intn(len(as.bgColors))]
	user.AvatarColor = nrgbaToHex(pick)
}

func (as *avatarService) pickColor(hexStr string) color.NRGBA {
	h := normalizeHex(hexStr)
	if h != "" {
		if c, ok := parseNRGBA(h); ok {
			return c
		}
	}
	return as.bgColors[as.rng.Intn(len(as.bgColors))]
}

func normalizeHex(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	s = strings.ToUpper(s)
	if len(s) != 7 {
		return ""
	}
	if _, ok := parseNRGBA(s); !ok {
		return ""
	}
	return s
}

func parseNRGBA(s string) (color.NRGBA, bool) {
	var r, g, b uint8
	if _, err := fmt.Sscanf(strings.TrimPrefix(s, "#"), "%02X%02X%02X", &r, &g, &b); err != nil {
		return color.NRGBA{}, false
	}
	return color.NRGBA{R: r, G: g, B: b, A: 0xFF}, true
}

func nrgbaToHex(c color.NRGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

func computeInitials(first, last string) string {
	fInit := "?"
	if len(first) > 0 {
		fInit = strings.ToUpper(first[:1])
	}
	lInit := "?"
	if len(last) > 0 {
		lInit = strings.ToUpper(last[:1])
	}
	return fInit + lInit
}

func loadFontFace(fontPath string, size float64) (font.Face, error) {
	fontBytes, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read font file: %w", err)
	}
	parsedFont, err := truetype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TTF: %w", err)
	}
	face := truetype.NewFace(parsedFont, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	return face, nil
}
