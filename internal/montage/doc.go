// Package montage builds highlight montages from batches of source videos.
//
// The pipeline has three stages. The sampler probes every source and plans
// seeded-random clip positions. The extractor encodes each planned clip to a
// uniform resolution and frame rate across a bounded worker pool. The
// concatenator joins the surviving clips losslessly, chunking recursively so
// no single ffmpeg invocation sees an unbounded file list. The Montage type
// composes the stages and owns the scratch directory for the whole run.
package montage
