package documents

import "time"

// UploadResponse is the minimal confirmation returned by the upload endpoint.
type UploadResponse struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	FileURL string `json:"file_url"`
	Status  string `json:"status"`
}

// DocumentResponse is the outward-facing representation of a document in
// review and visibility listings.
type DocumentResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	FileURL   string    `json:"file_url"`
	Summary   string    `json:"summary"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func toUploadResponse(doc Document) UploadResponse {
	return UploadResponse{
		ID:      doc.ID,
		Title:   doc.Title,
		FileURL: doc.FileURL,
		Status:  string(doc.Status),
	}
}

func toResponse(doc Document) DocumentResponse {
	return DocumentResponse{
		ID:        doc.ID,
		Title:     doc.Title,
		FileURL:   doc.FileURL,
		Summary:   doc.Summary,
		Status:    string(doc.Status),
		CreatedAt: doc.CreatedAt,
	}
}

func toResponses(docs []Document) []DocumentResponse {
	out := make([]DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		out = append(out, toResponse(doc))
	}
	return out
}
