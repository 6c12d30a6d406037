// Package primecluster finds primary clusters in ordered match data.
//
// What is a primary cluster?
//
//	Given entities in a fixed order and a boolean match relation between
//	them, a primary cluster is a contiguous index run [start..end] whose
//	members predominantly match each other. Plotted as a grid, clusters are
//	the dense squares along the diagonal:
//
//		######....
//		######....
//		######....
//		######....
//		##########   → (0,5) and (4,9)
//		##########
//		....######
//		....######
//		....######
//		....######
//
// Layout:
//
//	matchmatrix/         the read-only n×n match table (dense prefix sums or roaring bitmaps)
//	finder/              the growth-based scan producing clusters as a lazy sequence
//	batch/               many independent scans on a worker pool, with Prometheus metrics
//	config/              YAML/TOML configuration layered with environment overrides
//	logutil/             zap logger construction with file rotation
//	cmd/primecluster/    command-line front end over grid files
//
// Quick start:
//
//	m, _ := matchmatrix.ParseGridFile("grid.txt")
//	clusters, _ := finder.Find(m, finder.WithMinClusterSize(3))
//	for _, c := range clusters {
//		fmt.Println(c) // (start,end)
//	}
package primecluster
