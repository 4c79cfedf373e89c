// Package lae evaluates matrix expressions on a fatigue-scheduled worker pool.
//
// A computation tree (add, multiply, negate, transpose over matrix leaves) is
// resolved bottom-up; every operator is split into row tasks which a fixed
// pool of persistent workers executes, each task going to the least-fatigued
// idle worker. End-users typically interact with the Service façade:
//
//	srv, _ := lae.New(lae.WithConfig(cfg))
//	defer srv.Shutdown()
//	_ = srv.RunFile(ctx, "input.json", "output.json")
//	fmt.Print(srv.Report())
//
// For the input document formats see package service/parser.
package lae
