package questiongen

import "context"

type Service interface {
	GenerateDrafts(ctx context.Context, req DraftRequest) (*DraftResponse, error)
}

type service struct {
	provider Provider
}

func NewService(provider Provider) Service {
	return &service{provider: provider}
}

func (s *service) GenerateDrafts(ctx context.Context, req DraftRequest) (*DraftResponse, error) {
	drafts, err := s.provider.SendPrompt(ctx, systemPrompt, BuildUserPrompt(req))
	if err != nil {
		return nil, err
	}

	return &DraftResponse{
		SchemeID:  req.SchemeID,
		Questions: drafts,
	}, nil
}
