package analytics

import (
	"analytics-copilot/internal/models"
	"analytics-copilot/internal/store"
	"analytics-copilot/internal/util"

	"go.uber.org/zap"
)

// Engine routes a structured intent to one of the five aggregation
// pipelines and assembles the fixed response shape. Pipeline failures
// are contained here: the caller always receives a valid result.
type Engine struct {
	lakehouse *store.Lakehouse
	logger    *zap.Logger
}

// NewEngine creates an engine reading the given lakehouse
func NewEngine(lakehouse *store.Lakehouse) *Engine {
	return &Engine{
		lakehouse: lakehouse,
		logger:    util.GetLogger(),
	}
}

// InterpretAndRun classifies the query text and runs the selected
// pipeline. It never fails; unrecognized text resolves to the general
// overview and aggregation errors degrade into the result.
func (e *Engine) InterpretAndRun(query string) *models.AnalyticsResult {
	intent := Interpret(query)
	return e.Run(intent)
}

// Run executes the pipeline selected by the intent's analysis type
// against the current snapshot.
func (e *Engine) Run(intent models.Intent) *models.AnalyticsResult {
	snap := e.lakehouse.Snapshot()

	var out *pipelineOutput
	var err error
	switch intent.AnalysisType {
	case models.AnalysisTimeSeries:
		out, err = e.timeSeries(snap, &intent)
	case models.AnalysisRanking:
		out, err = e.ranking(snap, &intent)
	case models.AnalysisComparison:
		out, err = e.comparison(snap, &intent)
	case models.AnalysisDistribution:
		out, err = e.distribution(snap, &intent)
	default:
		out, err = e.general(snap, &intent)
	}

	if err != nil {
		e.logger.Warn("Query degraded",
			zap.String("analysis_type", string(intent.AnalysisType)),
			zap.Error(err))
		return &models.AnalyticsResult{
			Data:                map[string]interface{}{"error": err.Error()},
			Insights:            []string{"Error processing query: " + err.Error()},
			VisualizationType:   models.VizBar,
			QueryInterpretation: intent.Interpretation,
		}
	}

	return &models.AnalyticsResult{
		Data:                out.data,
		Insights:            out.insights,
		VisualizationType:   out.viz,
		QueryInterpretation: intent.Interpretation,
	}
}
