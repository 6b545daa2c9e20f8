package evaluation

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/samber/mo"
	log "github.com/sirupsen/logrus"
)

// GoodnessFunction scores a single test result. err is the error returned
// by the tester, if any.
type GoodnessFunction[Input, Output any] func(input Input, output Output, err error) float64

type Options[Input, Output any] struct {
	GoodnessFunction GoodnessFunction[Input, Output]
	Repetitions      int
}

type Tester[Input, Output any] interface {
	Test(ctx context.Context, test Input) (Output, error)
}

type Evaluator[Input, Output any] struct {
	options *Options[Input, Output]
	tester  Tester[Input, Output]
}

func NewEvaluator[Input, Output any](tester Tester[Input, Output], options *Options[Input, Output]) *Evaluator[Input, Output] {
	return &Evaluator[Input, Output]{
		options: options,
		tester:  tester,
	}
}

// Evaluate runs the test pack Repetitions times concurrently and returns the
// mean score of every test.
func (e *Evaluator[Input, Output]) Evaluate(ctx context.Context, testPack []Input) ([]float64, error) {
	if e.options.GoodnessFunction == nil {
		return nil, fmt.Errorf("goodness function is required")
	}
	repetitions := e.options.Repetitions
	if repetitions <= 0 {
		repetitions = 1
	}

	channels := make([]chan mo.Result[[]float64], repetitions)
	for i := 0; i < repetitions; i++ {
		channels[i] = make(chan mo.Result[[]float64], 1)
		go func(i int) {
			report, err := e.evaluate(ctx, testPack)
			if err != nil {
				channels[i] <- mo.Err[[]float64](err)
				return
			}
			channels[i] <- mo.Ok(report)
		}(i)
	}

	var evalErr *multierror.Error
	responses := make([][]float64, 0, repetitions)
	for i := 0; i < repetitions; i++ {
		response, err := (<-channels[i]).Get()
		if err != nil {
			evalErr = multierror.Append(evalErr, fmt.Errorf("repetition %d: %w", i, err))
			continue
		}
		responses = append(responses, response)
	}
	if err := evalErr.ErrorOrNil(); err != nil {
		return nil, err
	}

	report := make([]float64, len(testPack))
	for i := range testPack {
		sum := 0.0
		for _, response := range responses {
			sum += response[i]
		}
		report[i] = sum / float64(len(responses))
	}
	log.Debugf("evaluated %d tests over %d repetitions", len(testPack), repetitions)

	return report, nil
}

func (e *Evaluator[Input, Output]) evaluate(ctx context.Context, testPack []Input) ([]float64, error) {
	responses, err := e.test(ctx, testPack)
	if err != nil {
		return nil, fmt.Errorf("failed to test: %w", err)
	}

	report := make([]float64, len(testPack))
	for i, response := range responses {
		res, resErr := response.Get()
		report[i] = e.options.GoodnessFunction(testPack[i], res, resErr)
	}

	return report, nil
}

func (e *Evaluator[Input, Output]) test(ctx context.Context, testPack []Input) ([]mo.Result[Output], error) {
	responses := make([]mo.Result[Output], len(testPack))

	for i, test := range testPack {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		response, err := e.tester.Test(ctx, test)
		if err != nil {
			responses[i] = mo.Err[Output](err)
		} else {
			responses[i] = mo.Ok(response)
		}
	}

	return responses, nil
}
