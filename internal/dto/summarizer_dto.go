package dto

// InputRequest is shared by the input preview and the summarize action.
// PDF is filled by the controller from the multipart "file" field.
type InputRequest struct {
	Mode string `json:"mode" form:"mode" validate:"omitempty,oneof=text pdf"`
	Text string `json:"text" form:"text"`
	PDF  []byte `json:"-" form:"-"`
}

type InputResponse struct {
	Text      string `json:"text"`
	WordCount int    `json:"word_count"`
	PageCount int    `json:"page_count,omitempty"`
}

type SummarizeRequest struct {
	Mode      string `json:"mode" form:"mode" validate:"omitempty,oneof=text pdf"`
	Text      string `json:"text" form:"text"`
	PDF       []byte `json:"-" form:"-"`
	MinLength int    `json:"min_length" form:"min_length" validate:"min=10,max=100"`
	MaxLength int    `json:"max_length" form:"max_length" validate:"min=50,max=500"`
}

func (r *SummarizeRequest) Input() *InputRequest {
	return &InputRequest{Mode: r.Mode, Text: r.Text, PDF: r.PDF}
}

// RenderInstruction tells the page what to show after a handler ran.
type RenderInstruction struct {
	State          string           `json:"state"`
	Skipped        bool             `json:"skipped"`
	InputWordCount int              `json:"input_word_count,omitempty"`
	Summary        *SummaryView     `json:"summary,omitempty"`
	Translation    *TranslationView `json:"translation,omitempty"`
}

type SummaryView struct {
	Text         string   `json:"text"`
	Bullets      []string `json:"bullets"`
	Sentences    []string `json:"sentences"`
	WordCount    int      `json:"word_count"`
	FileName     string   `json:"file_name"`
	DownloadURL  string   `json:"download_url"`
	WordCloudURL string   `json:"word_cloud_url"`
}

type TranslationView struct {
	Text        string   `json:"text"`
	Bullets     []string `json:"bullets"`
	FileName    string   `json:"file_name"`
	DownloadURL string   `json:"download_url"`
}

// Download is a plain-text attachment.
type Download struct {
	FileName string
	Content  string
}
