// Package udf registers user-defined plotting functions for the generated
// app. The user hands over a Python module; its source is embedded verbatim
// in the rendered script, so registration only needs the top-level function
// headers and docstrings, which a structural scan of the source provides.
package udf
