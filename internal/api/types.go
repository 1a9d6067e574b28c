package api

import "time"

// User is the authenticated account profile returned by GET /users/me.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	BusinessType string `json:"business_type"`
	IsVerified   bool   `json:"is_verified"`
	IsActive     bool   `json:"is_active"`
}

// TokenPair is the response body of POST /auth/login. The user field is
// optional; callers fetch the full profile from /users/me after login.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type,omitempty"`
	User         *User  `json:"user,omitempty"`
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	BusinessType string `json:"business_type"`
}

// Store is a brand/business profile owned by a user.
type Store struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	BrandName   string     `json:"brand_name"`
	BrandTone   string     `json:"brand_tone"`
	Description string     `json:"description,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// StoreRequest is the body for creating or updating a store.
type StoreRequest struct {
	BrandName   string `json:"brand_name"`
	BrandTone   string `json:"brand_tone"`
	Description string `json:"description,omitempty"`
}

// Project statuses as defined by the backend.
const (
	ProjectStatusDraft     = "draft"
	ProjectStatusCompleted = "completed"
	ProjectStatusArchived  = "archived"
)

// Project is a named campaign grouping generated contents under a store.
type Project struct {
	ID          int64      `json:"id"`
	StoreID     int64      `json:"store_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// ProjectRequest is the body for creating or updating a project.
type ProjectRequest struct {
	StoreID     int64  `json:"store_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
}

// Content types as defined by the backend.
const (
	ContentTypeTextAd            = "text_ad"
	ContentTypeImageGen          = "image_gen"
	ContentTypeBackgroundRemoval = "background_removal"
	ContentTypeSketchToImage     = "sketch_to_image"
)

// Content is one generated ad artifact (image and/or copy) tied to a project.
type Content struct {
	ID                int64          `json:"id"`
	ProjectID         int64          `json:"project_id"`
	Type              string         `json:"type"`
	UserPrompt        string         `json:"user_prompt,omitempty"`
	ImagePrompt       string         `json:"image_prompt,omitempty"`
	OptimizedPrompt   string         `json:"optimized_prompt,omitempty"`
	AdCopy            string         `json:"ad_copy,omitempty"`
	OriginalImagePath string         `json:"original_image_path,omitempty"`
	ResultImagePath   string         `json:"result_image_path,omitempty"`
	AIConfig          map[string]any `json:"ai_config,omitempty"`
	GenerationTime    int            `json:"generation_time,omitempty"`
	IsSuccess         bool           `json:"is_success"`
	ErrorMessage      string         `json:"error_message,omitempty"`
	CreatedAt         *time.Time     `json:"created_at,omitempty"`
	UpdatedAt         *time.Time     `json:"updated_at,omitempty"`
}

// GenerateRequest is the body of POST /contents/generate.
type GenerateRequest struct {
	AdDescription  string   `json:"ad_description"`
	ImagePrompt    string   `json:"image_prompt"`
	TextInImage    string   `json:"text_in_image,omitempty"`
	NegativePrompt string   `json:"negative_prompt,omitempty"`
	Seed           *int64   `json:"seed,omitempty"`
	Steps          *int     `json:"steps,omitempty"`
	CFG            *float64 `json:"cfg,omitempty"`
	Width          *int     `json:"width,omitempty"`
	Height         *int     `json:"height,omitempty"`
	SamplerName    string   `json:"sampler_name,omitempty"`
	Scheduler      string   `json:"scheduler,omitempty"`
	ProjectID      int64    `json:"project_id"`
}

// GenerateResponse is the body returned by POST /contents/generate.
type GenerateResponse struct {
	Success         bool   `json:"success"`
	Message         string `json:"message"`
	ImagePath       string `json:"image_path,omitempty"`
	ImageURL        string `json:"image_url,omitempty"`
	ContentID       int64  `json:"content_id,omitempty"`
	GenerationTime  int    `json:"generation_time,omitempty"`
	OptimizedPrompt string `json:"optimized_prompt,omitempty"`
	AdCopy          string `json:"ad_copy,omitempty"`
}

// UploadResponse is the parsed JSON body of POST /contents/upload.
type UploadResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	FilePath  string `json:"file_path,omitempty"`
	ContentID int64  `json:"content_id,omitempty"`
}
