package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/fikshb/LSPLMS-sub000/internal/container"
	"github.com/fikshb/LSPLMS-sub000/internal/router"
)

var chiLambda *chiadapter.ChiLambdaV2

func buildRouter() *chi.Mux {
	c := container.New()

	handler := router.New(router.RouterConfig{
		SchemeHandler:      c.SchemeContainer.Handler,
		QuestionHandler:    c.QuestionContainer.Handler,
		TemplateHandler:    c.TemplateContainer.Handler,
		ExaminationHandler: c.ExaminationContainer.Handler,
		QuestionGenHandler: c.QuestionGenContainer.Handler,
	})

	mux := chi.NewRouter()
	mux.Mount("/", handler)
	return mux
}

func lambdaHandler(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	return chiLambda.ProxyWithContextV2(ctx, req)
}

func main() {
	_ = godotenv.Load()

	mux := buildRouter()

	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		chiLambda = chiadapter.NewV2(mux)
		lambda.Start(lambdaHandler)
		return
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("listening on :%s", port)
	if err := http.ListenAndServe(":"+port, mux); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
