package decode

import "math"

// resampleLinear converts mono PCM from srcRate to dstRate using linear
// interpolation. Adequate for feature extraction; not intended for
// listening-quality conversion.
func resampleLinear(pcm []float64, srcRate, dstRate int) []float64 {
	if srcRate == dstRate || len(pcm) == 0 || srcRate <= 0 || dstRate <= 0 {
		return pcm
	}

	n := int(math.Floor(float64(len(pcm)) * float64(dstRate) / float64(srcRate)))
	if n <= 0 {
		return []float64{}
	}

	step := float64(srcRate) / float64(dstRate)
	out := make([]float64, n)
	for i := range out {
		pos := float64(i) * step
		j := int(pos)
		if j >= len(pcm)-1 {
			out[i] = pcm[len(pcm)-1]
			continue
		}
		frac := pos - float64(j)
		out[i] = pcm[j]*(1-frac) + pcm[j+1]*frac
	}

	return out
}
