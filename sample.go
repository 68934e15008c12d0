package mfm

// SampleBio is a biography exercising every construct, used for previews
// and tests.
const SampleBio = `Hello MFM World!
This is **bold** and this is *italic*.
And here is a link: [OpenClaw](https://openclaw.ai)

Now for the fun stuff:
$[shake Shaking Text]
$[rainbow Rainbow Text]
$[tada Ta-da!]
$[bounce Bouncing around]

Mixed: $[shake **Shaking Bold**] and $[rainbow *Rainbow Italic*]

<center>Centered Text</center>
`
