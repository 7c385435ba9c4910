package dto

type StatsResponse struct {
	Summaries    int64 `json:"summaries"`
	Translations int64 `json:"translations"`
	Skipped      int64 `json:"skipped"`
	InputWords   int64 `json:"input_words"`
	SummaryWords int64 `json:"summary_words"`
}
