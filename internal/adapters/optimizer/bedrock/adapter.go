package bedrock

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime/types"
	"go.uber.org/zap"

	"github.com/nulzo/prompt-optimizer-api/internal/core/domain"
	"github.com/nulzo/prompt-optimizer-api/internal/core/ports"
	"github.com/nulzo/prompt-optimizer-api/internal/platform/logger"
	"github.com/nulzo/prompt-optimizer-api/internal/registry"
)

// register with the optimizer factory registry on import
func init() {
	registry.Register("bedrock", func(cfg domain.CapabilityConfig) (ports.PromptOptimizer, error) {
		return New(cfg)
	})
}

// Adapter calls the Bedrock agent-runtime OptimizePrompt API. The response
// is an event stream: an analysis event with insights about the prompt,
// followed by the optimized prompt event.
type Adapter struct {
	client *bedrockagentruntime.Client
	logger *zap.Logger
}

func New(cfg domain.CapabilityConfig) (*Adapter, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.Profile != "" {
		opts = append(opts, awsconfig.WithSharedConfigProfile(cfg.Profile))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &Adapter{
		client: bedrockagentruntime.NewFromConfig(awsCfg),
		logger: logger.With(zap.String("optimizer", "bedrock")),
	}, nil
}

func (a *Adapter) Name() string {
	return "bedrock"
}

func (a *Adapter) Optimize(ctx context.Context, prompt, target string) (domain.UpstreamResult, error) {
	out, err := a.client.OptimizePrompt(ctx, &bedrockagentruntime.OptimizePromptInput{
		Input: &types.InputPromptMemberTextPrompt{
			Value: types.TextPrompt{Text: aws.String(prompt)},
		},
		TargetModelId: aws.String(target),
	})
	if err != nil {
		return domain.UpstreamResult{}, fmt.Errorf("OptimizePrompt call failed: %w", err)
	}

	stream := out.GetStream()
	defer func() {
		_ = stream.Close()
	}()

	var result domain.UpstreamResult
	for event := range stream.Events() {
		switch ev := event.(type) {
		case *types.OptimizedPromptStreamMemberAnalyzePromptEvent:
			result.Analysis = aws.ToString(ev.Value.Message)
			a.logger.Debug("prompt analysis received",
				zap.String("target", target),
				zap.Int("analysis_length", len(result.Analysis)),
			)
		case *types.OptimizedPromptStreamMemberOptimizedPromptEvent:
			if tp, ok := ev.Value.OptimizedPrompt.(*types.OptimizedPromptMemberTextPrompt); ok {
				result.Optimized = aws.ToString(tp.Value.Text)
			}
		}
	}
	if err := stream.Err(); err != nil {
		return domain.UpstreamResult{}, fmt.Errorf("OptimizePrompt stream failed: %w", err)
	}

	if result.Optimized == "" {
		return domain.UpstreamResult{}, domain.ErrEmptyOptimizedPrompt
	}

	return result, nil
}
