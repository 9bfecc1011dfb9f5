package ai

import "context"

// StubClient заглушка, которая не делает реальных запросов.
// Реализует все три операции для локальной разработки без ключей.
type StubClient struct{}

var (
	_ VehicleIdentifier = (*StubClient)(nil)
	_ DamageAssessor    = (*StubClient)(nil)
	_ ChatAssistant     = (*StubClient)(nil)
)

func NewStubClient() *StubClient { return &StubClient{} }

func (c *StubClient) Identify(_ context.Context, _ []byte, _ string) (*VehicleInfo, error) {
	return &VehicleInfo{
		Plate:      "А123ВС77",
		Make:       "Toyota",
		Model:      "Corolla",
		Color:      "серый",
		Year:       "2018",
		Confidence: 0.42,
	}, nil
}

func (c *StubClient) Assess(_ context.Context, _ []byte, _ string) (*DamageReport, error) {
	return &DamageReport{
		Parts: []DamagedPart{
			{Part: "передний бампер", Damage: "царапина", Severity: "minor", Description: "царапина до грунта слева"},
		},
		Assessment: "Повреждения косметические, окраска одной детали",
		Severity:   "minor",
	}, nil
}

func (c *StubClient) Ask(_ context.Context, question string, _ bool) (*ChatAnswer, error) {
	return &ChatAnswer{Text: "запрос получен: " + question}, nil
}
