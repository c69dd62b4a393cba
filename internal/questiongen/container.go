package questiongen

import "context"

type Container struct {
	Handler *Handler
}

func NewContainer() *Container {
	ctx := context.Background()
	provider, _ := NewGeminiProvider(ctx)
	service := NewService(provider)
	handler := NewHandler(service)

	return &Container{
		Handler: handler,
	}
}
