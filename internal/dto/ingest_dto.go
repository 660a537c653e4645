package dto

// IngestJobMessage is the payload published to the ingestion topic when
// an upload is accepted.
type IngestJobMessage struct {
	JobId      string `json:"job_id"`
	FilePath   string `json:"file_path"`
	Filename   string `json:"filename"`
	Collection string `json:"collection"`
}

type IngestResponse struct {
	Filename   string `json:"filename"`
	Collection string `json:"collection"`
	Status     string `json:"status"`
	JobId      string `json:"job_id"`
}

type JobStatusResponse struct {
	JobId  string `json:"job_id"`
	Status string `json:"status"`
}
