package model

// All physics runs in Celsius; Fahrenheit exists only at the edges, applied
// when sample/container temperatures are ingested and when grid or sample
// temperatures are read out.

func FToC(f float64) float64 { return (f - 32) * 5 / 9 }

func CToF(c float64) float64 { return c*9/5 + 32 }
