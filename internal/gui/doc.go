// Package gui provides the window hosts: a raylib application and an ebiten
// game. Both paint frames into a persistent offscreen target that the loop
// fades and draws over, then present it with the controls panel on top.
package gui
