package constant

const (
	InputModeText = "text"
	InputModePDF  = "pdf"

	SummaryFileName     = "summary.txt"
	TranslationFileName = "summary_urdu.txt"

	SummaryDownloadPath     = "/api/summarizer/v1/summary/download"
	TranslationDownloadPath = "/api/summarizer/v1/translation/download"
	WordCloudPath           = "/api/summarizer/v1/summary/wordcloud.png"

	// slider bounds of the summary page
	MinLengthLower = 10
	MinLengthUpper = 100
	MaxLengthLower = 50
	MaxLengthUpper = 500

	PageTitle = "Advanced Text Summarizer"
	PageIcon  = "📝"
)
