package tidydraws_test

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/arloliu/tidydraws"
	"github.com/arloliu/tidydraws/gather"
	"github.com/arloliu/tidydraws/posterior"
	"github.com/arloliu/tidydraws/spread"
)

func exampleData() *posterior.InferenceData {
	mu, _ := posterior.NewVariable("mu", []int{2, 2}, []float64{0.1, 0.2, 0.3, 0.4})
	theta, _ := posterior.NewVariable("theta", []int{2, 2, 2},
		[]float64{1, 2, 3, 4, 5, 6, 7, 8}, "school")

	data := posterior.New()
	g, _ := data.AddGroup(posterior.GroupPosterior, mu, theta)
	_ = g.SetCoords("school", posterior.StringCoords("Choate", "Deerfield"))

	return data
}

func ExampleSpreadDraws() {
	tbl, err := tidydraws.SpreadDraws(exampleData(), spread.WithVarNames("mu"))
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Print(tbl)
	// Output:
	// chain	draw	mu
	// 0	0	0.1
	// 0	1	0.2
	// 1	0	0.3
	// 1	1	0.4
}

func ExampleGatherDraws() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	tbl, err := tidydraws.GatherDraws(exampleData(),
		gather.WithSpread(spread.WithCombined(false)),
		gather.WithValueName("estimate"),
		gather.WithLogger(logger),
	)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Print(tbl)
	// Output:
	// chain	draw	school	variable	estimate
	// 0	0	null	mu	0.1
	// 0	1	null	mu	0.2
	// 1	0	null	mu	0.3
	// 1	1	null	mu	0.4
	// 0	0	Choate	theta	1
	// 0	0	Deerfield	theta	2
	// 0	1	Choate	theta	3
	// 0	1	Deerfield	theta	4
	// 1	0	Choate	theta	5
	// 1	0	Deerfield	theta	6
	// 1	1	Choate	theta	7
	// 1	1	Deerfield	theta	8
}
