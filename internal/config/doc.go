// SPDX-License-Identifier: EPL-2.0

// Package config loads the optional YAML configuration of the voxclean
// command. Missing keys keep the values of Default.
//
//	processing:
//	  noise_reduction: 0.5
//	  remove_background: true
//	  gain: 1.0
//	  clarity: 0.5
//	decode:
//	  sample_rate: 0
//	encode:
//	  mode: realtime   # or offline
//	  chunk_ms: 20
//	  bit_depth: 16
//	convert:
//	  ffmpeg_path: ffmpeg
//	  timeout: 60
//	logging:
//	  level: info
//	  format: text
//	  output: stderr
package config
