package schema

// ------------------------------------------
// ------------ Request DTOs ----------------
// ------------------------------------------

// CreatePostRequest is the payload for creating or updating a journal
// post. Title, ShortDescription and Categories are required. The
// coordinates are only present when the author picked a location from
// the suggestion dropdown.
type CreatePostRequest struct {
	Title            string   `json:"title" validate:"required,max=120,post_text"`
	ShortDescription string   `json:"short_description" validate:"required,max=512,post_text"`
	LongDescription  string   `json:"long_description,omitempty" validate:"omitempty,post_text"`
	Location         string   `json:"location"`
	Latitude         *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude        *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
	CreatedAt        int64    `json:"created_at"`
	Categories       []int64  `json:"categories" validate:"required,min=1"`
	Tags             []string `json:"tags,omitempty"`
}

// ------------------------------------------
// ------------ Response DTOs ---------------
// ------------------------------------------

// Post is a journal post as returned by the wayfare API.
type Post struct {
	ID               int64    `json:"id"`
	Title            string   `json:"title"`
	ShortDescription string   `json:"short_description"`
	LongDescription  string   `json:"long_description,omitempty"`
	Location         string   `json:"location"`
	Latitude         *float64 `json:"latitude,omitempty"`
	Longitude        *float64 `json:"longitude,omitempty"`
	CreatedAt        int64    `json:"created_at"`
	Categories       []int64  `json:"categories"`
	Tags             []string `json:"tags,omitempty"`
}

// Category is a post category the author picks from.
type Category struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
}

// PhotoMeta describes an uploaded photo as echoed back by the API.
type PhotoMeta struct {
	ID  int64  `json:"id"`
	URL string `json:"url"`
}

// PhotoUpload is a single image handed to the upload endpoint. The
// endpoint requires an existing post, so uploads always trail the post
// write.
type PhotoUpload struct {
	Filename    string
	ContentType string
	Content     []byte
}
