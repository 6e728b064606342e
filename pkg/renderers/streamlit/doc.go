// Package streamlit renders TemplateData into a self-contained Streamlit app
// script. The generated Python addresses widgets through the container
// variables AdaptPath derives, embeds the user's plotting module verbatim,
// and posts the assembled payload to the Tesseract's apply endpoint.
package streamlit
