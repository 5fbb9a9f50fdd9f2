package render

import (
	"fmt"
	"html/template"
	"io"

	"github.com/bernie-sg/riley-cycles-watch/scan"
)

var heatmapTemplate = template.Must(template.New("heatmap").Parse(`<!DOCTYPE html>
<html>
<head>
<title>{{.Title}}</title>
<script src='https://cdn.plot.ly/plotly-latest.min.js'></script>
<style>
body { background: #000; color: #fff; font-family: monospace; margin: 0; padding: 10px; }
h1 { text-align: center; color: #0ff; }
#heatmap { width: 100%; height: 85vh; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<div id='heatmap'></div>
<script>
var z = {{.Z}};
var x = {{.XLabels}};
var y = {{.YLabels}};

var data = [{
    z: z, x: x, y: y, type: 'heatmap',
    colorscale: [
        [0, '#000000'], [0.1, '#001133'], [0.3, '#003388'],
        [0.5, '#0066ff'], [0.7, '#00aaff'], [1.0, '#ffffff']
    ],
    showscale: false
}];

var layout = {
    xaxis: { title: 'Time (offsets ago)', tickfont: { color: '#888' }, gridcolor: '#222' },
    yaxis: { title: 'Wavelength (calendar days)', tickfont: { color: '#888' }, gridcolor: '#222' },
    plot_bgcolor: '#000', paper_bgcolor: '#000'
};

Plotly.newPlot('heatmap', data, layout, {responsive: true});
</script>
</body>
</html>
`))

type heatmapData struct {
	Title   string
	Z       template.JS
	XLabels template.JS
	YLabels template.JS
}

// Heatmap writes the rolling-scan surface as a plotly heatmap HTML document:
// one column per analyzed offset, one row per scanned period.
//
// The time axis is reversed so the most recent window sits on the right.
// Results must be in increasing-offset order, as produced by scan.Rolling.
func Heatmap(w io.Writer, results []scan.WindowResult, title string) error {
	if len(results) == 0 {
		return fmt.Errorf("render: no rolling results")
	}

	first := results[0].Spectrum
	rows := first.Len()

	z := make([][]float64, rows)
	for i := range z {
		z[i] = make([]float64, len(results))
	}

	// Column 0 holds the oldest offset so "now" renders on the right.
	for col, res := range results {
		t := len(results) - 1 - col
		for i := 0; i < rows && i < res.Spectrum.Len(); i++ {
			z[i][t] = round3(res.Spectrum.Power[i])
		}
	}

	xLabels := make([]string, len(results))
	for i := range xLabels {
		offsetsAgo := results[len(results)-1-i].Offset
		if offsetsAgo == 0 {
			xLabels[i] = "NOW"
		} else {
			xLabels[i] = fmt.Sprintf("-%d", offsetsAgo)
		}
	}

	yLabels := make([]int, rows)
	for i := range yLabels {
		yLabels[i] = CalendarDays(first.Period(i))
	}

	data := heatmapData{Title: title}

	var err error
	if data.Z, err = asJS(z); err != nil {
		return err
	}
	if data.XLabels, err = asJS(xLabels); err != nil {
		return err
	}
	if data.YLabels, err = asJS(yLabels); err != nil {
		return err
	}

	return heatmapTemplate.Execute(w, data)
}
