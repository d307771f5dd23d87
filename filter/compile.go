// SPDX-License-Identifier: EPL-2.0

package filter

const (
	rumbleCutoff  = 150.0
	dcCutoff      = 20.0
	passQ         = 0.5
	hissCutoffMin = 2000.0
	hissCutoffMax = 4000.0
	clarityFreq   = 3000.0
	clarityQ      = 0.7
	clarityMaxDB  = 6.0
	quickLowpass  = 3000.0
)

// Compile maps opts onto the fixed [Highpass, Lowpass, Gain, Peaking] chain.
// Out of range options are clamped first.
func Compile(opts Options) Chain {
	opts = opts.Clamp()

	highpass := dcCutoff
	if opts.RemoveBackground {
		highpass = rumbleCutoff
	}

	return Chain{
		{Kind: Highpass, Frequency: highpass, Q: passQ},
		{Kind: Lowpass, Frequency: hissCutoffMin + opts.NoiseReduction*(hissCutoffMax-hissCutoffMin), Q: passQ},
		{Kind: Gain, Factor: opts.Gain},
		{Kind: Peaking, Frequency: clarityFreq, Q: clarityQ, GainDB: opts.Clarity * clarityMaxDB},
	}
}

// QuickCleanup is the one-click noise reduction preset: rumble removal
// followed by a 3 kHz lowpass.
func QuickCleanup() Chain {
	return Chain{
		{Kind: Highpass, Frequency: rumbleCutoff, Q: passQ},
		{Kind: Lowpass, Frequency: quickLowpass, Q: passQ},
	}
}
