package main

import (
	"flag"
	"log"
	"math/rand"
	"os"

	"github.com/dirkdupont/autorec"
	"github.com/dirkdupont/autorec/rank"
	"github.com/dirkdupont/autorec/sample"
	"github.com/dirkdupont/autorec/train"
	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/anyvec/anyvec32"
	"github.com/unixpickle/mnist"
	"github.com/unixpickle/rip"
	"github.com/unixpickle/serializer"
)

func main() {
	var hidden int
	var epochs int
	var batchSize int
	var stepSize float64
	var seed int64
	var outPath string
	flag.IntVar(&hidden, "hidden", 50, "bottleneck dimension")
	flag.IntVar(&epochs, "epochs", 5, "training epochs")
	flag.IntVar(&batchSize, "batch", 64, "minibatch size")
	flag.Float64Var(&stepSize, "step", 0.001, "Adam step size")
	flag.Int64Var(&seed, "seed", 1, "random seed")
	flag.StringVar(&outPath, "out", "", "path for the serialized model")
	flag.Parse()

	log.Println("Setting up...")

	creator := anyvec32.CurrentCreator()
	rng := rand.New(rand.NewSource(seed))

	training := intensityRows(creator, mnist.LoadTrainingDataSet())
	model := autorec.NewAutoencoder(creator, 28*28, hidden, rng)

	t := &train.Trainer{
		Model:       model,
		Cost:        autorec.MSE{},
		Params:      model.Parameters(),
		Transformer: &train.Adam{},
	}
	loop := &train.Loop{
		Trainer:   t,
		Samples:   training,
		Rater:     train.ConstRater(stepSize),
		BatchSize: batchSize,
		Epochs:    epochs,
		Rand:      rng,
		Cancel:    rip.NewRIP().Chan(),
		StatusFunc: func(epoch int, meanCost float64) {
			log.Printf("epoch %d: mean cost=%f", epoch, meanCost)
		},
	}

	log.Println("Press ctrl+c once to stop...")
	if _, err := loop.Run(); err != nil {
		log.Fatalln(err)
	}

	log.Println("Ranking test set by reconstruction error...")
	testRows := intensityRows(creator, mnist.LoadTestingDataSet())
	_, errs, err := model.Score(sample.Pack(creator, testRows))
	if err != nil {
		log.Fatalln(err)
	}
	order := rank.Rank(errs)
	summary := rank.Summarize(errs, 0.99)
	log.Printf("test errors: mean=%f stddev=%f p99=%f", summary.Mean,
		summary.StdDev, summary.Cutoff)
	log.Println("Best reconstructed:", rank.Best(order, 10))
	log.Println("Typical:", rank.Typical(order, 10))
	log.Println("Most anomalous:", rank.Worst(order, 10))

	if outPath != "" {
		data, err := serializer.SerializeAny(model)
		if err != nil {
			log.Fatalln(err)
		}
		if err := os.WriteFile(outPath, data, 0644); err != nil {
			log.Fatalln(err)
		}
		log.Println("Saved model to", outPath)
	}
}

func intensityRows(c anyvec.Creator, ds mnist.DataSet) sample.SliceList {
	// Labels are deliberately ignored; the autoencoder
	// trains on the raw intensities.
	rows := make([][]float64, len(ds.Samples))
	for i, s := range ds.Samples {
		rows[i] = s.Intensities
	}
	return sample.NewSliceList(c, rows)
}
