package blog

import "time"

type Blog struct {
	UID           string     `json:"id"`
	Title         string     `json:"title"`
	Author        string     `json:"author"`
	Content       string     `json:"content"`
	CoverImageURL string     `json:"image_url"`
	CreatedAt     time.Time  `json:"created_at"`
	LastModified  *time.Time `json:"last_modified"`
}

// BlogImage holds an uploaded illustration as opaque bytes: the storefront
// references it through a [IMAGE:<name>] directive inside the post content.
type BlogImage struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"-" datastore:",noindex"`
}

// ImageBasePath is where uploaded blog images are served from.
const ImageBasePath = "/uploads/blog-images"
