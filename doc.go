// Package ginevolve evolves gin rummy players whose decisions come from fixed-topology
// neural networks.
//
// Each player is a genome: a flat sequence of values in [0,1] that decodes into the weights
// of a three-layer perceptron network (package nn). The network reads integer observations of
// the game pushed into its feeds and produces three outputs, which package strategy turns into
// a discrete action, a card index, and an answer to an improper knock.
//
// Package evolve runs the evolutionary loop: a round-robin tournament adjudicated by an
// external oracle, ranking by age-discounted wins, breeding of the best members by crossover
// and mutation, and culling of the rest.
//
// Basic usage:
//
//	// Load configuration
//	config, err := evolve.LoadConfig("path/to/config.ini")
//	if err != nil {
//		log.Fatalf("Error loading config: %v", err)
//	}
//
//	// Create a population whose matches are played by your oracle
//	pop, err := evolve.NewPopulation(config, oracle, slog.Default())
//	if err != nil {
//		log.Fatalf("Error creating population: %v", err)
//	}
//
//	// Run for 100 generations
//	if err := pop.Run(ctx, 100); err != nil {
//		log.Fatalf("Error running generation: %v", err)
//	}
//
// A runnable program with a reference gin rummy oracle lives in examples/ginrummy.
package ginevolve
