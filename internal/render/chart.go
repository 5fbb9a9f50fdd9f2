package render

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"math"

	"github.com/bernie-sg/riley-cycles-watch/scan"
)

var chartTemplate = template.Must(template.New("chart").Parse(`<!DOCTYPE html>
<html>
<head>
<title>{{.Title}}</title>
<script src='https://cdn.plot.ly/plotly-latest.min.js'></script>
<style>
body { background: #000; color: #fff; font-family: monospace; margin: 0; padding: 10px; }
h1 { text-align: center; color: #0ff; font-weight: 300; letter-spacing: 2px; }
#chart { width: 100%; height: 75vh; min-height: 500px; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<div id='chart'></div>
<script>
var spectrum = {{.Spectrum}};
var peaks = {{.Peaks}};
var labels = {{.Labels}};

var traceSpectrum = {
    x: spectrum.map(d => d[0]),
    y: spectrum.map(d => d[1]),
    type: 'scatter', mode: 'lines', name: 'Spectrum',
    line: { color: '#00ffff', width: 2, shape: 'spline', smoothing: 0.8 },
    fill: 'tozeroy', fillcolor: 'rgba(0,255,255,0.05)'
};

var tracePeaks = {
    x: peaks.map(p => p[0]),
    y: peaks.map(p => p[1]),
    type: 'scatter', mode: 'markers+text', name: 'Peaks',
    marker: {
        color: peaks.map(p => p[1] > 0.25 ? '#ff0000' : p[1] > 0.15 ? '#ffff00' : '#00ff00'),
        size: peaks.map(p => p[1] > 0.25 ? 15 : p[1] > 0.15 ? 12 : 10),
        symbol: 'diamond', line: { color: '#fff', width: 1 }
    },
    text: labels, textposition: 'top'
};

var layout = {
    xaxis: { title: 'Wavelength (calendar days)', color: '#666', gridcolor: '#222' },
    yaxis: { title: 'Normalized Power', color: '#666', gridcolor: '#222' },
    plot_bgcolor: '#0a0a0a', paper_bgcolor: '#000', showlegend: true,
    legend: { font: { color: '#ccc' }, bgcolor: 'rgba(0,0,0,0.7)' },
    hovermode: 'closest'
};

Plotly.newPlot('chart', [traceSpectrum, tracePeaks], layout, {responsive: true, displaylogo: false});
</script>
</body>
</html>
`))

type chartData struct {
	Title    string
	Spectrum template.JS
	Peaks    template.JS
	Labels   template.JS
}

// SpectrumChart writes the processed spectrum with labeled peaks as a
// self-contained plotly HTML document.
func SpectrumChart(w io.Writer, res *scan.WindowResult, title string) error {
	points := make([][2]float64, res.Spectrum.Len())
	for i := range points {
		points[i] = [2]float64{
			float64(res.Spectrum.Period(i)) * CalendarFactor,
			round3(res.Spectrum.Power[i]),
		}
	}

	peakPoints := make([][2]float64, len(res.Peaks))
	labels := make([]string, len(res.Peaks))
	for i, p := range res.Peaks {
		peakPoints[i] = [2]float64{float64(p.Period) * CalendarFactor, round3(p.Power)}
		labels[i] = fmt.Sprintf("%dd (%s)", CalendarDays(p.Period), p.Tier)
	}

	data := chartData{Title: title}

	var err error
	if data.Spectrum, err = asJS(points); err != nil {
		return err
	}
	if data.Peaks, err = asJS(peakPoints); err != nil {
		return err
	}
	if data.Labels, err = asJS(labels); err != nil {
		return err
	}

	return chartTemplate.Execute(w, data)
}

func asJS(v any) (template.JS, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("render: %w", err)
	}

	return template.JS(b), nil
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
