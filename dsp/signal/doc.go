// Package signal defines the Signal record and turns it into ordered sample
// sequences.
//
// A Signal is a formula in t plus the domain it is defined on. Continuous
// signals are sampled on a uniform grid derived from the sampling rate;
// discrete signals use explicit positions or positions generated with a fixed
// step. Display mode bounds the point count for interactive use, analysis mode
// only limits it by the time range.
//
// Sampling never fails: a position whose formula cannot be evaluated yields 0
// and is recorded as a [Fault] on the returned [Sequence], and an invalid time
// range yields an empty sequence.
package signal
